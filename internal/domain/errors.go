package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Storage errors
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

// ErrorKind classifies a failure for retry and user-messaging decisions.
type ErrorKind string

const (
	ErrKindValidation        ErrorKind = "validation"
	ErrKindAIService         ErrorKind = "ai_service"
	ErrKindProvider          ErrorKind = "provider"
	ErrKindDuplicateSlug     ErrorKind = "duplicate_slug"
	ErrKindInvalidSlugFormat ErrorKind = "invalid_slug_format"
	ErrKindNetwork           ErrorKind = "network"
	ErrKindRateLimit         ErrorKind = "rate_limit"
	ErrKindNotFound          ErrorKind = "not_found"
	ErrKindUnknown           ErrorKind = "unknown"
)

// BotError carries a classification and a safe user-facing message alongside
// the internal error detail. Internal detail is only ever logged.
type BotError struct {
	Kind        ErrorKind
	Message     string
	UserMessage string
	Err         error
}

func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *BotError) Unwrap() error { return e.Err }

func NewValidationError(message, userMessage string) *BotError {
	return &BotError{Kind: ErrKindValidation, Message: message, UserMessage: userMessage}
}

func NewAIServiceError(message string, err error) *BotError {
	return &BotError{
		Kind:        ErrKindAIService,
		Message:     message,
		UserMessage: "Failed to generate intelligent slug. Using fallback.",
		Err:         err,
	}
}

func NewProviderError(message string, err error) *BotError {
	return &BotError{
		Kind:        ErrKindProvider,
		Message:     message,
		UserMessage: "Failed to create short link. Please try again.",
		Err:         err,
	}
}

func NewDuplicateSlugError(message string) *BotError {
	return &BotError{
		Kind:        ErrKindDuplicateSlug,
		Message:     message,
		UserMessage: "This slug already exists. Please choose a different one.",
	}
}

func NewInvalidSlugFormatError(message string) *BotError {
	return &BotError{
		Kind:        ErrKindInvalidSlugFormat,
		Message:     message,
		UserMessage: "Invalid slug format. Please use only letters, numbers, and hyphens.",
	}
}

func NewNetworkError(message string, err error) *BotError {
	return &BotError{
		Kind:        ErrKindNetwork,
		Message:     message,
		UserMessage: "Network connection failed. Please try again.",
		Err:         err,
	}
}

func NewRateLimitError(message string, err error) *BotError {
	return &BotError{
		Kind:        ErrKindRateLimit,
		Message:     message,
		UserMessage: "Too many requests. Please wait a moment and try again.",
		Err:         err,
	}
}

// Classify converts an arbitrary error into a *BotError. Already-classified
// errors pass through; everything else is matched on message content, with
// unknown errors getting a generic safe user message.
func Classify(err error) *BotError {
	var botErr *BotError
	if errors.As(err, &botErr) {
		return botErr
	}

	if errors.Is(err, ErrNotFound) {
		return &BotError{
			Kind:        ErrKindNotFound,
			Message:     err.Error(),
			UserMessage: "Not found.",
			Err:         err,
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "too many requests"):
		return NewRateLimitError(err.Error(), err)
	case strings.Contains(msg, "network") || strings.Contains(msg, "connection") ||
		strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return NewNetworkError(err.Error(), err)
	}

	return &BotError{
		Kind:        ErrKindUnknown,
		Message:     err.Error(),
		UserMessage: "An unexpected error occurred. Please try again.",
		Err:         err,
	}
}

// Retryable reports whether the error is transient. Only network failures
// and rate limits are worth retrying; validation and deterministic provider
// rejections never are.
func Retryable(err error) bool {
	kind := Classify(err).Kind
	return kind == ErrKindNetwork || kind == ErrKindRateLimit
}

// UserMessage extracts the safe user-facing text for any error.
func UserMessage(err error) string {
	return Classify(err).UserMessage
}
