package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type contextKey string

const operatorIDKey contextKey = "operator_id"

// ErrOperatorNotFound is returned when no operator is attached to the
// request context. Handlers answer 401.
var ErrOperatorNotFound = errors.New("operator_id not found in context")

// OperatorIDFromCtx returns the authenticated operator set by RequireAuth.
func OperatorIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(operatorIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrOperatorNotFound
	}
	return id, nil
}

// WithOperatorID attaches an operator to ctx.
func WithOperatorID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, operatorIDKey, id)
}
