package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantKind  ErrorKind
		retryable bool
	}{
		{"classified error passes through", NewDuplicateSlugError("key taken"), ErrKindDuplicateSlug, false},
		{"wrapped classified error", fmt.Errorf("create: %w", NewRateLimitError("429", nil)), ErrKindRateLimit, true},
		{"not found sentinel", ErrNotFound, ErrKindNotFound, false},
		{"wrapped not found", fmt.Errorf("get link: %w", ErrNotFound), ErrKindNotFound, false},
		{"rate limit by message", errors.New("API rate limit exceeded"), ErrKindRateLimit, true},
		{"too many requests by message", errors.New("Too Many Requests"), ErrKindRateLimit, true},
		{"network by message", errors.New("network is unreachable"), ErrKindNetwork, true},
		{"connection by message", errors.New("connection refused"), ErrKindNetwork, true},
		{"timeout by message", errors.New("i/o timeout"), ErrKindNetwork, true},
		{"context deadline", errors.New("context deadline exceeded"), ErrKindNetwork, true},
		{"anything else is unknown", errors.New("something odd"), ErrKindUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.retryable, Retryable(tt.err))
			assert.NotEmpty(t, got.UserMessage, "every classified error gets a safe message")
		})
	}
}

func TestUserMessageHidesInternalDetail(t *testing.T) {
	internal := errors.New(`dub responded 500: {"error":{"message":"pq: relation links does not exist"}}`)

	msg := UserMessage(internal)

	assert.NotContains(t, msg, "pq:")
	assert.NotContains(t, msg, "500")
	assert.Equal(t, "An unexpected error occurred. Please try again.", msg)
}

func TestBotErrorUnwrap(t *testing.T) {
	cause := errors.New("socket closed")
	err := NewNetworkError("fetch failed", cause)

	assert.ErrorIs(t, err, cause)

	var botErr *BotError
	require.ErrorAs(t, fmt.Errorf("outer: %w", err), &botErr)
	assert.Equal(t, ErrKindNetwork, botErr.Kind)
}

func TestDuplicateSlugErrorText(t *testing.T) {
	err := NewDuplicateSlugError("Key already exists")
	assert.Contains(t, err.UserMessage, "already exists")
	assert.False(t, Retryable(err))
}
