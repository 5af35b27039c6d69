package runtime

import (
	"time"

	"github.com/promistrio/albatros-chute/pkg/domain"
)

// State wraps the release flags with the only transitions the runtime may perform.
// Idle -> Initiated -> InProgress happens in Begin, InProgress -> Released in
// MarkAsserted. Released is terminal.
type State struct {
	domain.ReleaseState
}

// Begin accepts a release request at now. It returns false, leaving the state
// untouched, when a release was already initiated.
func (s *State) Begin(now time.Time) bool {
	if s.Initiated {
		return false
	}
	at := now
	s.ReleaseTime = &at
	s.Initiated = true
	// No wait state is observable above the sequencer.
	s.InProgress = true
	return true
}

// MarkAsserted records that the output was driven to its release position.
func (s *State) MarkAsserted(now time.Time) {
	if s.Released || !s.Initiated {
		return
	}
	at := now
	s.AssertTime = &at
	s.Released = true
}

// MarkRested records that the hold completed and the output returned to rest.
// Released stays true.
func (s *State) MarkRested() {
	if s.Released {
		s.InProgress = false
	}
}

// Snapshot returns a copy that shares no pointers with the live state.
func (s *State) Snapshot() domain.ReleaseState {
	out := s.ReleaseState
	out.ReleaseTime = copyTime(s.ReleaseTime)
	out.AssertTime = copyTime(s.AssertTime)
	out.SinkExceededSince = copyTime(s.SinkExceededSince)
	return out
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
