package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestWithOperatorID_RoundTrip(t *testing.T) {
	id := uuid.New()
	got, err := OperatorIDFromCtx(WithOperatorID(context.Background(), id))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != id {
		t.Fatalf("expected %v, got %v", id, got)
	}
}

func TestOperatorIDFromCtx_Missing(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"empty context", context.Background()},
		{"nil uuid", WithOperatorID(context.Background(), uuid.Nil)},
		{"wrong type", context.WithValue(context.Background(), operatorIDKey, "not-a-uuid")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := OperatorIDFromCtx(tt.ctx); !errors.Is(err, ErrOperatorNotFound) {
				t.Fatalf("expected ErrOperatorNotFound, got %v", err)
			}
		})
	}
}
