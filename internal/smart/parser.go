// Package smart turns free-text like "dentist tomorrow at 14:00" into a task
// draft via an external structured-extraction service.
package smart

import (
	"context"
	"errors"
	"time"

	"ajanda/internal/task"
)

// ErrNotUnderstood means the service produced nothing usable from the input
// (or no credential is configured). It is distinct from transport failures,
// which are returned as ordinary errors.
var ErrNotUnderstood = errors.New("input not understood")

// Parser interprets free text into a task draft. Implementations never touch
// the task store; committing a draft is the caller's business.
type Parser interface {
	Interpret(ctx context.Context, input string, today time.Time) (task.Draft, error)
}
