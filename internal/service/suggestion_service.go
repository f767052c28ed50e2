package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/telepathbot/telepath/internal/ai"
	"github.com/telepathbot/telepath/internal/domain"
	"github.com/telepathbot/telepath/internal/retry"
	"github.com/telepathbot/telepath/internal/slug"
)

// DefaultDomain is used when the user has not picked one in setup.
const DefaultDomain = "dub.sh"

// SuggestionService produces slug suggestions for URLs. Generation never
// fails from the caller's point of view: any model or parsing problem falls
// back to a deterministic slug derived from the URL itself.
type SuggestionService struct {
	completer ai.Completer
	log       *zap.SugaredLogger
}

func NewSuggestionService(completer ai.Completer, log *zap.SugaredLogger) *SuggestionService {
	return &SuggestionService{completer: completer, log: log}
}

// SuggestionRequest carries the URL plus optional page metadata that gives
// the model more to work with.
type SuggestionRequest struct {
	URL         string
	Title       string
	Description string
}

// modelReply is the JSON shape the prompt asks the model to produce.
type modelReply struct {
	Slug      string `json:"slug"`
	Reasoning string `json:"reasoning"`
}

// GenerateSlug asks the model for a slug in the user's preferred style and
// sanitizes the result. The returned suggestion always has a non-empty slug.
func (s *SuggestionService) GenerateSlug(ctx context.Context, req SuggestionRequest, style domain.SlugStyle, preferredDomain string) *domain.Suggestion {
	dom := preferredDomain
	if dom == "" {
		dom = DefaultDomain
	}

	suggestion := &domain.Suggestion{URL: req.URL, Domain: dom}

	reply, err := s.complete(ctx, buildPrompt(req, style, dom))
	if err != nil {
		s.log.Warnw("slug generation failed, using fallback", "url", req.URL, "error", err)
		suggestion.SuggestedSlug = slug.Fallback(req.URL)
		suggestion.Reasoning = "Generated from URL domain/path"
		return suggestion
	}

	sanitized := slug.Sanitize(reply.Slug)
	if sanitized == "" {
		s.log.Warnw("model produced unusable slug, using fallback", "url", req.URL, "raw", reply.Slug)
		suggestion.SuggestedSlug = slug.Fallback(req.URL)
		suggestion.Reasoning = "Generated from URL domain/path"
		return suggestion
	}

	suggestion.SuggestedSlug = sanitized
	suggestion.Reasoning = reply.Reasoning
	return suggestion
}

func (s *SuggestionService) complete(ctx context.Context, prompt string) (*modelReply, error) {
	text, err := retry.Do(ctx, func() (string, error) {
		return s.completer.Complete(ctx, prompt)
	})
	if err != nil {
		return nil, err
	}
	return parseReply(text)
}

// parseReply extracts the first JSON object embedded in the model's output.
// Models often wrap the object in prose or markdown fences, so decoding
// starts at the first opening brace; only that first object is attempted.
func parseReply(text string) (*modelReply, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, domain.NewAIServiceError("no JSON object in model output", nil)
	}

	var reply modelReply
	dec := json.NewDecoder(strings.NewReader(text[start:]))
	if err := dec.Decode(&reply); err != nil {
		return nil, domain.NewAIServiceError("malformed JSON in model output", err)
	}
	if strings.TrimSpace(reply.Slug) == "" {
		return nil, domain.NewAIServiceError("model output lacks a slug", nil)
	}
	if strings.TrimSpace(reply.Reasoning) == "" {
		return nil, domain.NewAIServiceError("model output lacks reasoning", nil)
	}
	return &reply, nil
}

func buildPrompt(req SuggestionRequest, style domain.SlugStyle, dom string) string {
	var b strings.Builder

	b.WriteString("You are a URL slug generator for a link shortener.\n")
	fmt.Fprintf(&b, "Generate a short, memorable slug for this URL: %s\n", req.URL)
	fmt.Fprintf(&b, "The short link will live on the domain: %s\n", dom)
	if req.Title != "" {
		fmt.Fprintf(&b, "Page title: %s\n", req.Title)
	}
	if req.Description != "" {
		fmt.Fprintf(&b, "Page description: %s\n", req.Description)
	}

	b.WriteString("\nStyle requirements: ")
	b.WriteString(styleDirective(style))
	b.WriteString("\n\nRules:\n")
	b.WriteString("- lowercase letters, digits and hyphens only\n")
	fmt.Fprintf(&b, "- at most %d characters\n", slug.MaxLength)
	b.WriteString("- no leading or trailing hyphens\n")
	b.WriteString("\nRespond with a single JSON object and nothing else:\n")
	b.WriteString(`{"slug": "your-slug", "reasoning": "one short sentence"}`)

	return b.String()
}

func styleDirective(style domain.SlugStyle) string {
	switch style {
	case domain.SlugStyleShort:
		return "as short as possible, 3-5 characters, abbreviations welcome."
	case domain.SlugStyleDescriptive:
		return "descriptive and readable, 8-12 characters, favor whole words."
	case domain.SlugStyleTechnical:
		return "technical kebab-case, precise terminology from the page content."
	default:
		return "balanced and memorable, 4-8 characters, capture the page's essence."
	}
}
