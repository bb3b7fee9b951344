// Package gemini implements the advisor provider against the Gemini
// generateContent REST API.
package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/filamentgenius/backend/internal/advisor"
	"github.com/filamentgenius/backend/internal/model"
)

// Client calls the Gemini REST API. It implements advisor.Provider and
// health.Pinger.
type Client struct {
	http  *resty.Client
	model string
	log   zerolog.Logger
}

// Options configures a Client. BaseURL is overridable for tests.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a Gemini client. The API key travels in the
// x-goog-api-key header, never in the URL, so request logs stay clean.
func NewClient(opts Options, log zerolog.Logger) (*Client, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if opts.Model == "" {
		return nil, errors.New("gemini: model is required")
	}

	http := resty.New().
		SetBaseURL(opts.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", opts.APIKey)
	if opts.Timeout > 0 {
		http.SetTimeout(opts.Timeout)
	}

	return &Client{http: http, model: opts.Model, log: log}, nil
}

// Wire types for generateContent. Only the fields this client uses are
// declared.
type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   *advisor.Schema `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	Contents          []content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateJSON performs a schema-constrained completion and returns the raw
// JSON text of the first candidate.
func (c *Client) GenerateJSON(ctx context.Context, req advisor.StructuredRequest) (string, error) {
	body := generateRequest{
		Contents: []content{{Role: model.RoleUser, Parts: []part{{Text: req.Prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   req.Schema,
		},
	}
	if req.SystemInstruction != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: req.SystemInstruction}}}
	}
	return c.generate(ctx, body)
}

// Chat performs a conversational completion. The prior turns are sent as
// alternating user/model contents with the new message appended last.
func (c *Client) Chat(ctx context.Context, req advisor.ChatRequest) (string, error) {
	contents := make([]content, 0, len(req.History)+1)
	for _, t := range req.History {
		contents = append(contents, content{Role: t.Role, Parts: []part{{Text: t.Text}}})
	}
	contents = append(contents, content{Role: model.RoleUser, Parts: []part{{Text: req.Message}}})

	body := generateRequest{Contents: contents}
	if req.SystemInstruction != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: req.SystemInstruction}}}
	}
	return c.generate(ctx, body)
}

func (c *Client) generate(ctx context.Context, body generateRequest) (string, error) {
	var out generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&out).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		return "", errors.Wrap(err, "gemini: request failed")
	}
	if resp.IsError() {
		msg := resp.Status()
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return "", errors.Errorf("gemini: %s", msg)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: response contained no candidates")
	}

	text := out.Candidates[0].Content.Parts[0].Text
	c.log.Debug().Int("response_bytes", len(text)).Str("model", c.model).Msg("gemini completion")
	return text, nil
}

// HealthPing verifies the endpoint and key by fetching the model's metadata.
func (c *Client) HealthPing(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/v1beta/models/%s", c.model))
	if err != nil {
		return errors.Wrap(err, "gemini: ping failed")
	}
	if resp.IsError() {
		return errors.Errorf("gemini: ping returned %s", resp.Status())
	}
	return nil
}
