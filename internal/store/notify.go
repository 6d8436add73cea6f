package store

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"icctv-admin/internal/client"
)

// ErrNotFound is returned by Fetch when the listing holds no record with the id.
var ErrNotFound = errors.New("not found")

// Notifier surfaces the outcome of an operation to the operator.
// Implementations must be safe for concurrent use.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier writes notifications through zerolog.
type LogNotifier struct {
	Logger zerolog.Logger
}

func (n LogNotifier) Success(msg string) { n.Logger.Info().Msg(msg) }
func (n LogNotifier) Error(msg string)   { n.Logger.Error().Msg(msg) }

type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

const genericFailure = "unexpected error"

// reporter formats notifications for one resource, e.g. "create device failed: ...".
type reporter struct {
	notify   Notifier
	resource string
}

func (r reporter) succeeded(verb string) {
	r.notify.Success(fmt.Sprintf("%s %s", r.resource, verb))
}

// fail notifies and hands err back so the caller can keep returning it.
func (r reporter) fail(action string, err error) error {
	detail := client.Detail(err)
	if detail == "" {
		detail = genericFailure
	}
	r.notify.Error(fmt.Sprintf("%s %s failed: %s", action, r.resource, detail))
	return err
}

func (r reporter) notFound(id int64) error {
	return fmt.Errorf("%s %d: %w", r.resource, id, ErrNotFound)
}

// unwrap returns the envelope's data, or an error for a failed call or an
// envelope reporting success=false.
func unwrap[T any](env *client.Envelope[T], err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if err := env.Check(); err != nil {
		return zero, err
	}
	return env.Data, nil
}
