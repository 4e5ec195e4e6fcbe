package action

import (
	"context"
	"log/slog"
	"time"

	"github.com/NielsdaWheelz/ytgit/internal/errors"
	"github.com/NielsdaWheelz/ytgit/internal/events"
)

// Result is the outcome of a successful action.
type Result struct {
	// Message is shown to the user through the Notifier. Empty means no
	// notification.
	Message string
}

// Handler performs one kind of action.
type Handler interface {
	Handle(ctx context.Context, req Request) (Result, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, req Request) (Result, error)

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, req Request) (Result, error) {
	return f(ctx, req)
}

// Notifier reports action outcomes to the user.
type Notifier interface {
	Info(msg string)
	Error(err error)
}

// EventLog records dispatched actions.
type EventLog interface {
	Append(e events.Event) error
}

// Dispatcher routes requests to handlers. Each dispatch is attempted once;
// there is no retry and no partial success.
type Dispatcher struct {
	handlers map[Kind]Handler
	notifier Notifier
	log      EventLog
	logger   *slog.Logger
	now      func() time.Time
}

// DispatcherOpts configures a Dispatcher. Nil fields are replaced by no-ops.
type DispatcherOpts struct {
	Notifier Notifier
	Log      EventLog
	Logger   *slog.Logger
	Now      func() time.Time
}

// NewDispatcher returns a Dispatcher with no handlers registered.
func NewDispatcher(opts DispatcherOpts) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[Kind]Handler),
		notifier: opts.Notifier,
		log:      opts.Log,
		logger:   opts.Logger,
		now:      opts.Now,
	}
	if d.notifier == nil {
		d.notifier = nopNotifier{}
	}
	if d.logger == nil {
		d.logger = slog.New(discardHandler{})
	}
	if d.now == nil {
		d.now = time.Now
	}
	return d
}

// Register sets the handler for kind, replacing any previous one.
func (d *Dispatcher) Register(kind Kind, h Handler) {
	d.handlers[kind] = h
}

// Dispatch validates req and runs its handler. The outcome is recorded in
// the event log and reported through the notifier.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Result, error) {
	res, err := d.run(ctx, req)
	d.record(string(req.Kind), req.Subject(), err)
	if err != nil {
		d.logger.Debug("action failed", "action", req.Kind, "issue", req.Subject(), "error_code", errors.GetCode(err))
		d.notifier.Error(err)
		return Result{}, err
	}
	d.logger.Debug("action done", "action", req.Kind, "issue", req.Subject())
	if res.Message != "" {
		d.notifier.Info(res.Message)
	}
	return res, nil
}

// Reject records and reports a message that could not be decoded.
func (d *Dispatcher) Reject(req Request, err error) {
	d.record(string(req.Kind), req.Subject(), err)
	d.notifier.Error(err)
}

func (d *Dispatcher) run(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	h, ok := d.handlers[req.Kind]
	if !ok {
		return Result{}, errors.New(errors.EUnknownAction, "no handler for action "+string(req.Kind))
	}
	if err := ctx.Err(); err != nil {
		return Result{}, errors.Wrap(errors.EInternal, "action cancelled", err)
	}
	return h.Handle(ctx, req)
}

func (d *Dispatcher) record(action, issueID string, err error) {
	if d.log == nil {
		return
	}
	code := ""
	if err != nil {
		code = string(errors.GetCode(err))
		if code == "" {
			code = string(errors.EInternal)
		}
	}
	if lerr := d.log.Append(events.NewEvent(d.now(), action, issueID, code)); lerr != nil {
		d.logger.Warn("failed to append event", "error", lerr)
	}
}

type nopNotifier struct{}

func (nopNotifier) Info(string)  {}
func (nopNotifier) Error(error) {}
