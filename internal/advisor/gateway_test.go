package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filamentgenius/backend/internal/model"
)

type fakeProvider struct {
	jsonResponse string
	jsonErr      error
	chatResponse string
	chatErr      error

	structuredCalls int
	lastChatReq     ChatRequest
}

func (f *fakeProvider) GenerateJSON(ctx context.Context, req StructuredRequest) (string, error) {
	f.structuredCalls++
	return f.jsonResponse, f.jsonErr
}

func (f *fakeProvider) Chat(ctx context.Context, req ChatRequest) (string, error) {
	f.lastChatReq = req
	return f.chatResponse, f.chatErr
}

func validSubmission() model.QuestionnaireSubmission {
	return model.QuestionnaireSubmission{
		Application:     "drone frame",
		PrinterType:     model.PrinterEnclosed,
		ExperienceLevel: model.ExperienceIntermediate,
		Aesthetic:       model.AestheticMatte,
		Budget:          model.BudgetStandard,
	}
}

const validResponse = `[
  {"name":"PolyLite PLA","brand":"Polymaker","material":"PLA","reason":"easy","priceEstimate":"AUD 30","productUrl":"https://3dprintergear.com.au/p","isTopPick":true,"technicalSpecs":{"nozzleTemp":"200-220C","bedTemp":"60C","nozzleType":"Brass","notes":"dry box"}},
  {"name":"eSun PETG","brand":"eSun","material":"PETG","reason":"durable","priceEstimate":"AUD 35","productUrl":"https://3dprintergear.com.au/q","isTopPick":false,"technicalSpecs":{"nozzleTemp":"230-250C","bedTemp":"80C","nozzleType":"Brass"}}
]`

func TestRecommend_ParsesValidResponse(t *testing.T) {
	p := &fakeProvider{jsonResponse: validResponse}
	g := NewGateway(p, zerolog.Nop())

	recs := g.Recommend(context.Background(), validSubmission())
	require.Len(t, recs, 2)
	assert.Equal(t, "PolyLite PLA", recs[0].Name)
	assert.True(t, recs[0].IsTopPick)
	assert.Equal(t, "dry box", recs[0].TechnicalSpecs.Notes)
	assert.False(t, recs[1].IsTopPick)
	assert.Equal(t, "230-250C", recs[1].TechnicalSpecs.NozzleTemp)
}

func TestRecommend_AcceptsFencedJSON(t *testing.T) {
	p := &fakeProvider{jsonResponse: "```json\n" + validResponse + "\n```"}
	g := NewGateway(p, zerolog.Nop())

	recs := g.Recommend(context.Background(), validSubmission())
	require.Len(t, recs, 2)
}

func TestRecommend_ClampsToOneTopPick(t *testing.T) {
	response := `[
	  {"name":"A","brand":"B","material":"PLA","reason":"r","priceEstimate":"AUD 1","productUrl":"u","isTopPick":true,"technicalSpecs":{"nozzleTemp":"200C","bedTemp":"60C","nozzleType":"Brass"}},
	  {"name":"C","brand":"D","material":"PETG","reason":"r","priceEstimate":"AUD 2","productUrl":"u","isTopPick":true,"technicalSpecs":{"nozzleTemp":"240C","bedTemp":"80C","nozzleType":"Brass"}}
	]`
	g := NewGateway(&fakeProvider{jsonResponse: response}, zerolog.Nop())

	recs := g.Recommend(context.Background(), validSubmission())
	require.Len(t, recs, 2)
	assert.True(t, recs[0].IsTopPick)
	assert.False(t, recs[1].IsTopPick)
}

func TestRecommend_FailsClosed(t *testing.T) {
	cases := map[string]*fakeProvider{
		"provider error":     {jsonErr: errors.New("upstream 500")},
		"malformed json":     {jsonResponse: "not json at all"},
		"missing top pick":   {jsonResponse: `[{"name":"A","brand":"B","material":"PLA","reason":"r","priceEstimate":"AUD 1","productUrl":"u","technicalSpecs":{"nozzleTemp":"200C","bedTemp":"60C","nozzleType":"Brass"}}]`},
		"missing bed temp": {jsonResponse: `[{"name":"A","brand":"B","material":"PLA","reason":"r","priceEstimate":"AUD 1","productUrl":"u","isTopPick":true,"technicalSpecs":{"nozzleTemp":"200C","nozzleType":"Brass"}}]`},
		"empty name":         {jsonResponse: `[{"name":"","brand":"B","material":"PLA","reason":"r","priceEstimate":"AUD 1","productUrl":"u","isTopPick":true,"technicalSpecs":{"nozzleTemp":"200C","bedTemp":"60C","nozzleType":"Brass"}}]`},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			g := NewGateway(p, zerolog.Nop())
			assert.Empty(t, g.Recommend(context.Background(), validSubmission()))
		})
	}
}

func TestRecommend_EmptyArrayIsNoResults(t *testing.T) {
	g := NewGateway(&fakeProvider{jsonResponse: "[]"}, zerolog.Nop())
	assert.Empty(t, g.Recommend(context.Background(), validSubmission()))
}

func TestRecommend_InvalidSubmissionSkipsProvider(t *testing.T) {
	p := &fakeProvider{jsonResponse: validResponse}
	g := NewGateway(p, zerolog.Nop())

	q := validSubmission()
	q.PrinterType = "submarine"
	assert.Empty(t, g.Recommend(context.Background(), q))
	assert.Zero(t, p.structuredCalls, "invalid submission must not reach the provider")
}

func TestConverse_PassesHistoryAndReturnsReply(t *testing.T) {
	p := &fakeProvider{chatResponse: "PLA is a great starter material."}
	g := NewGateway(p, zerolog.Nop())

	history := []model.Message{
		{ID: "1", Role: model.RoleUser, Text: "hi", Timestamp: 1},
		{ID: "2", Role: model.RoleModel, Text: "hello!", Timestamp: 2},
	}
	reply := g.Converse(context.Background(), history, "what should I print with?")

	assert.Equal(t, "PLA is a great starter material.", reply)
	require.Len(t, p.lastChatReq.History, 2)
	assert.Equal(t, model.RoleUser, p.lastChatReq.History[0].Role)
	assert.Equal(t, "hello!", p.lastChatReq.History[1].Text)
	assert.Equal(t, "what should I print with?", p.lastChatReq.Message)
}

func TestConverse_EmptyHistory(t *testing.T) {
	p := &fakeProvider{chatResponse: "G'day! Ask me anything about filament."}
	g := NewGateway(p, zerolog.Nop())

	reply := g.Converse(context.Background(), nil, "hello")
	assert.NotEmpty(t, reply)
	assert.Empty(t, p.lastChatReq.History)
}

func TestConverse_Degrades(t *testing.T) {
	g := NewGateway(&fakeProvider{chatErr: errors.New("timeout")}, zerolog.Nop())
	assert.Equal(t, FallbackReply, g.Converse(context.Background(), nil, "hello"))

	g = NewGateway(&fakeProvider{chatResponse: ""}, zerolog.Nop())
	assert.Equal(t, EmptyReply, g.Converse(context.Background(), nil, "hello"))
}
