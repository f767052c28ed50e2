// Package dub implements the link provider gateway against the Dub REST API.
package dub

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/telepathbot/telepath/internal/domain"
	"github.com/telepathbot/telepath/internal/provider"
	"github.com/telepathbot/telepath/internal/retry"
)

const defaultBaseURL = "https://api.dub.co"

type Client struct {
	http      *resty.Client
	log       *zap.SugaredLogger
	retryOpts []retry.Option
}

type Option func(*Client)

// WithBaseURL points the client at a different API host, used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.http.SetBaseURL(baseURL)
	}
}

// WithRetryOptions overrides the shared retry policy defaults.
func WithRetryOptions(opts ...retry.Option) Option {
	return func(c *Client) {
		c.retryOpts = opts
	}
}

func NewClient(apiKey string, log *zap.SugaredLogger, opts ...Option) *Client {
	httpClient := resty.New().
		SetBaseURL(defaultBaseURL).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	c := &Client{http: httpClient, log: log}
	for _, apply := range opts {
		apply(c)
	}
	return c
}

var _ provider.LinkProvider = (*Client)(nil)

func (c *Client) CreateLink(ctx context.Context, req provider.CreateLinkRequest) (*provider.Link, error) {
	return retry.Do(ctx, func() (*provider.Link, error) {
		resp, err := c.http.R().SetContext(ctx).SetBody(req).Post("/links")
		if err != nil {
			return nil, domain.NewNetworkError("dub create link request failed", err)
		}
		if resp.IsError() {
			return nil, c.translate("create link", resp)
		}

		var link provider.Link
		if err := json.Unmarshal(resp.Body(), &link); err != nil {
			return nil, domain.NewProviderError("dub create link: unexpected response body", err)
		}
		link.Raw = append(json.RawMessage(nil), resp.Body()...)
		return &link, nil
	}, c.retryOpts...)
}

func (c *Client) DeleteLink(ctx context.Context, id string) error {
	_, err := retry.Do(ctx, func() (struct{}, error) {
		resp, err := c.http.R().SetContext(ctx).Delete("/links/" + id)
		if err != nil {
			return struct{}{}, domain.NewNetworkError("dub delete link request failed", err)
		}
		if resp.IsError() {
			return struct{}{}, c.translate("delete link", resp)
		}
		return struct{}{}, nil
	}, c.retryOpts...)
	return err
}

func (c *Client) ListDomains(ctx context.Context) ([]provider.Domain, error) {
	return retry.Do(ctx, func() ([]provider.Domain, error) {
		resp, err := c.http.R().SetContext(ctx).SetQueryParam("pageSize", "50").Get("/domains")
		if err != nil {
			return nil, domain.NewNetworkError("dub list domains request failed", err)
		}
		if resp.IsError() {
			return nil, c.translate("list domains", resp)
		}

		var domains []provider.Domain
		if err := json.Unmarshal(resp.Body(), &domains); err != nil {
			return nil, domain.NewProviderError("dub list domains: unexpected response body", err)
		}
		return domains, nil
	}, c.retryOpts...)
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// translate maps a provider rejection onto the error taxonomy: duplicate and
// invalid-format rejections are deterministic and never retried; 429 is a
// rate limit.
func (c *Client) translate(op string, resp *resty.Response) error {
	message := strings.TrimSpace(string(resp.Body()))
	var apiErr apiError
	if err := json.Unmarshal(resp.Body(), &apiErr); err == nil && apiErr.Error.Message != "" {
		message = apiErr.Error.Message
	}

	c.log.Warnw("dub api error", "op", op, "status", resp.StatusCode(), "message", message)

	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "already exists"):
		return domain.NewDuplicateSlugError(message)
	case strings.Contains(lower, "invalid"):
		return domain.NewInvalidSlugFormatError(message)
	case resp.StatusCode() == 429:
		return domain.NewRateLimitError(message, nil)
	}
	return domain.NewProviderError(fmt.Sprintf("dub %s failed: %s", op, message), nil)
}
