package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/promistrio/albatros-chute/pkg/domain"
)

// Recorder implements ports.FlightRecorder in memory.
// Safe for concurrent use.
type Recorder struct {
	data map[string][]domain.Event
	mu   sync.RWMutex
}

// NewRecorder creates a new in-memory flight recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		data: make(map[string][]domain.Event),
	}
}

// Append stores a copy of the event at the end of the flight's log.
func (r *Recorder) Append(ctx context.Context, flightID string, event domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[flightID] = append(r.data[flightID], copyEvent(event))
	return nil
}

// Events returns a copy of the flight's log so callers cannot mutate the store.
func (r *Recorder) Events(ctx context.Context, flightID string) ([]domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events, ok := r.data[flightID]
	if !ok {
		return nil, domain.ErrFlightNotFound
	}

	ret := make([]domain.Event, len(events))
	for i, e := range events {
		ret[i] = copyEvent(e)
	}
	return ret, nil
}

// Flights returns the recorded flight IDs, sorted.
func (r *Recorder) Flights(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	flights := make([]string, 0, len(r.data))
	for id := range r.data {
		flights = append(flights, id)
	}
	sort.Strings(flights)
	return flights, nil
}

// Delete removes a flight's log.
func (r *Recorder) Delete(ctx context.Context, flightID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, flightID)
	return nil
}

func copyEvent(e domain.Event) domain.Event {
	if e.Fields == nil {
		return e
	}
	fields := make(map[string]string, len(e.Fields))
	for k, v := range e.Fields {
		fields[k] = v
	}
	e.Fields = fields
	return e
}
