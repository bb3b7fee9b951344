package advisor

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/filamentgenius/backend/internal/model"
)

// Replies used when the provider degrades. Chat must never dead-end on a
// transport error.
const (
	FallbackReply = "An error occurred while communicating with the AI. Please check your connection."
	EmptyReply    = "I'm having trouble connecting to the filament database right now. Please try again."
)

// Gateway validates and normalizes provider output into typed records. It is
// stateless per call and never retries; retry policy belongs to the caller.
type Gateway struct {
	provider Provider
	log      zerolog.Logger
}

// NewGateway creates a gateway over the given provider.
func NewGateway(p Provider, log zerolog.Logger) *Gateway {
	return &Gateway{provider: p, log: log}
}

// Recommend asks for schema-constrained recommendations for a submission.
// It fails closed: any provider error or malformed response yields an empty
// slice, which callers present as "no recommendations available".
func (g *Gateway) Recommend(ctx context.Context, q model.QuestionnaireSubmission) []model.Recommendation {
	if err := q.Validate(); err != nil {
		g.log.Warn().Err(err).Msg("recommend: invalid submission")
		return nil
	}

	raw, err := g.provider.GenerateJSON(ctx, StructuredRequest{
		SystemInstruction: systemInstruction,
		Prompt:            recommendPrompt(q),
		Schema:            recommendationSchema(),
	})
	if err != nil {
		g.log.Warn().Err(err).Msg("recommend: provider call failed")
		return nil
	}

	recs, err := decodeRecommendations(raw)
	if err != nil {
		g.log.Warn().Err(err).Msg("recommend: response rejected")
		return nil
	}
	return clampTopPick(recs)
}

// Converse sends the prior turns plus the new user turn and returns the
// reply text unmodified. Message framing and ids are the caller's concern.
func (g *Gateway) Converse(ctx context.Context, history []model.Message, newText string) string {
	turns := make([]Turn, 0, len(history))
	for _, m := range history {
		turns = append(turns, Turn{Role: m.Role, Text: m.Text})
	}

	reply, err := g.provider.Chat(ctx, ChatRequest{
		SystemInstruction: systemInstruction + chatInstruction,
		History:           turns,
		Message:           newText,
	})
	if err != nil {
		g.log.Warn().Err(err).Msg("converse: provider call failed")
		return FallbackReply
	}
	if reply == "" {
		return EmptyReply
	}
	return reply
}

// recommendationPayload mirrors model.Recommendation with a pointer bool so
// a missing isTopPick can be told apart from false.
type recommendationPayload struct {
	Name           string `json:"name"`
	Brand          string `json:"brand"`
	Material       string `json:"material"`
	Reason         string `json:"reason"`
	PriceEstimate  string `json:"priceEstimate"`
	ProductURL     string `json:"productUrl"`
	IsTopPick      *bool  `json:"isTopPick"`
	TechnicalSpecs *struct {
		NozzleTemp string `json:"nozzleTemp"`
		BedTemp    string `json:"bedTemp"`
		NozzleType string `json:"nozzleType"`
		Notes      string `json:"notes"`
	} `json:"technicalSpecs"`
}

// decodeRecommendations parses the provider's JSON and enforces the
// required-field list. A single invalid entry rejects the whole response.
func decodeRecommendations(raw string) ([]model.Recommendation, error) {
	cleaned := stripFences(raw)

	var payload []recommendationPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, err
	}

	out := make([]model.Recommendation, 0, len(payload))
	for _, p := range payload {
		if p.Name == "" || p.Brand == "" || p.Material == "" || p.Reason == "" ||
			p.PriceEstimate == "" || p.ProductURL == "" || p.IsTopPick == nil || p.TechnicalSpecs == nil {
			return nil, model.NewValidationError("recommendation", "required field missing in provider response")
		}
		if p.TechnicalSpecs.NozzleTemp == "" || p.TechnicalSpecs.BedTemp == "" || p.TechnicalSpecs.NozzleType == "" {
			return nil, model.NewValidationError("technicalSpecs", "required field missing in provider response")
		}
		out = append(out, model.Recommendation{
			Name:          p.Name,
			Brand:         p.Brand,
			Material:      p.Material,
			Reason:        p.Reason,
			PriceEstimate: p.PriceEstimate,
			ProductURL:    p.ProductURL,
			IsTopPick:     *p.IsTopPick,
			TechnicalSpecs: model.TechnicalSpecs{
				NozzleTemp: p.TechnicalSpecs.NozzleTemp,
				BedTemp:    p.TechnicalSpecs.BedTemp,
				NozzleType: p.TechnicalSpecs.NozzleType,
				Notes:      p.TechnicalSpecs.Notes,
			},
		})
	}
	return out, nil
}

// clampTopPick keeps the first top pick and clears the rest. Exactly-one is
// requested from the provider but enforced locally as well.
func clampTopPick(recs []model.Recommendation) []model.Recommendation {
	seen := false
	for i := range recs {
		if recs[i].IsTopPick {
			if seen {
				recs[i].IsTopPick = false
			}
			seen = true
		}
	}
	return recs
}

// stripFences removes an accidental markdown code fence around the JSON.
// Providers occasionally wrap output even when a JSON mime type is requested.
func stripFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) < 3 {
		return trimmed
	}
	return strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
}
