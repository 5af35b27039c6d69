package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/promistrio/albatros-chute/internal/logging"
	"github.com/promistrio/albatros-chute/internal/presentation/tui"
	"github.com/promistrio/albatros-chute/pkg/domain"
	"golang.org/x/term"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// Unlike signal.NotifyContext it remembers which signal arrived.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sc.sigCh)
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-sc.Context.Done():
		}
	}()
	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger from --log-level and --log-file.
// An empty level disables logging. The returned func releases the log file.
func createLogger(opts CommonOptions) (*slog.Logger, func(), error) {
	if opts.LogLevel == "" || opts.LogLevel == "off" {
		return logging.NewNop(), func() {}, nil
	}
	lvl, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if opts.LogFile != "" {
		logger, closer := logging.NewFile(opts.LogFile, lvl, logging.DefaultFileOptions)
		return logger, func() { _ = closer.Close() }, nil
	}
	return logging.New(lvl), func() {}, nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// colorProfile picks the termenv profile for w: plain text unless w is a terminal.
func colorProfile(w io.Writer) termenv.Profile {
	if !isTerminal(w) {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// renderMarkdown renders md for w, styled only on a terminal.
func renderMarkdown(w io.Writer, md string) error {
	render, err := tui.NewRenderer(isTerminal(w))
	if err != nil {
		return err
	}
	out, err := render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// createDebugHooks logs every lifecycle event at debug level.
func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTrigger: func(ctx context.Context, e *domain.TriggerEvent) {
			logger.Debug("Release Trigger", "reason", e.Trigger.Reason, "detail", e.Trigger.Detail)
		},
		OnOutput: func(ctx context.Context, e *domain.OutputEvent) {
			logger.Debug("Output Change", "output", e.Output, "asserted", e.Asserted, "channel", e.Channel, "pwm", e.PWM)
		},
		OnNotify: func(ctx context.Context, e *domain.NotificationEvent) {
			logger.Debug("Notification", "kind", e.Notification.Kind, "severity", e.Notification.Severity)
		},
	}
}
