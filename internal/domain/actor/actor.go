package actor

import (
	"context"
	"strings"
)

const UnknownName = "Unknown"

// Actor is the already-authenticated identity performing a mutation.
type Actor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Resolve trims both fields and substitutes UnknownName for a missing
// display name. ok is false when there is no id to attribute the change to.
func (a Actor) Resolve() (Actor, bool) {
	a.ID = strings.TrimSpace(a.ID)
	a.DisplayName = strings.TrimSpace(a.DisplayName)
	if a.DisplayName == "" {
		a.DisplayName = UnknownName
	}
	return a, a.ID != ""
}

type ctxKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

func FromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(ctxKey{}).(Actor)
	return a, ok
}
