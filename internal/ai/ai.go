package ai

import "context"

// Completer is a black-box text completion call. Implementations return the
// raw model output; callers are responsible for parsing anything structured
// out of it.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
