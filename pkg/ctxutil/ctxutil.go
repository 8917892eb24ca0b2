// Package ctxutil carries request-scoped values through context.Context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const taskIDKey ctxKey = "task_id"

// WithTaskID stores the id of the worker task running the current job.
func WithTaskID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, taskIDKey, id)
}

// TaskIDFromCtx extracts the task ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func TaskIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(taskIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
