package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nevta-digital/nevta-api/i18n"
	"github.com/nevta-digital/nevta-api/models"
	"github.com/nevta-digital/nevta-api/store"
)

type fakeGenerator struct {
	reply  string
	err    error
	calls  int
	prompt string
}

func (f *fakeGenerator) Complete(_ context.Context, _, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.reply, f.err
}

func insightsFixture(t *testing.T, withEntries bool) (*store.MemoryStore, string) {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemoryStore()
	if err := st.CreateUser(ctx, &models.User{ID: "u1", Mobile: "9876543210", LoginID: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := st.CreateOccasion(ctx, &models.Occasion{ID: "o1", OwnerID: "u1", Name: "Sharma Wedding", EventDate: "2024-05-15", CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if withEntries {
		err := st.CreateContribution(ctx, &models.Contribution{ID: "c1", OccasionID: "o1", GuestName: "Ramesh", Location: "Jaipur", Amount: 2500, ContributedAt: time.Now()})
		if err != nil {
			t.Fatal(err)
		}
	}
	return st, "o1"
}

func TestInsightsEmptyOccasionSkipsModel(t *testing.T) {
	st, id := insightsFixture(t, false)
	gen := &fakeGenerator{}
	svc := NewInsightsService(st, gen, i18n.New())

	got, err := svc.OccasionInsights(context.Background(), "u1", id, i18n.English)
	if err != nil {
		t.Fatal(err)
	}
	if gen.calls != 0 {
		t.Fatalf("model called for empty occasion")
	}
	if got.Summary != "No contributions recorded yet." || len(got.FunFacts) != 0 {
		t.Fatalf("got %+v", got)
	}
}

func TestInsightsParsesReply(t *testing.T) {
	st, id := insightsFixture(t, true)
	gen := &fakeGenerator{reply: "```json\n{\"summary\":\"शानदार\",\"fun_facts\":[\"एक\",\"दो\"]}\n```"}
	svc := NewInsightsService(st, gen, i18n.New())

	got, err := svc.OccasionInsights(context.Background(), "u1", id, i18n.Hindi)
	if err != nil {
		t.Fatal(err)
	}
	if got.Summary != "शानदार" || len(got.FunFacts) != 2 {
		t.Fatalf("got %+v", got)
	}
	if !strings.Contains(gen.prompt, "Ramesh | Jaipur | ₹2,500") || !strings.Contains(gen.prompt, "Hindi") {
		t.Fatalf("prompt = %q", gen.prompt)
	}
}

func TestInsightsFailuresAreUnavailable(t *testing.T) {
	st, id := insightsFixture(t, true)
	for _, gen := range []*fakeGenerator{
		{err: errors.New("boom")},
		{reply: "I cannot help with that"},
		{reply: `{"summary":"","fun_facts":[]}`},
	} {
		svc := NewInsightsService(st, gen, i18n.New())
		if _, err := svc.OccasionInsights(context.Background(), "u1", id, i18n.English); !errors.Is(err, ErrInsightsUnavailable) {
			t.Errorf("reply %q err %v: expected unavailable, got %v", gen.reply, gen.err, err)
		}
	}
}

func TestInsightsForeignOccasion(t *testing.T) {
	st, id := insightsFixture(t, true)
	svc := NewInsightsService(st, &fakeGenerator{}, i18n.New())
	if _, err := svc.OccasionInsights(context.Background(), "someone-else", id, i18n.English); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestClaudeAIServiceComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" || r.Header.Get("anthropic-version") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var req ClaudeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.System == "" || len(req.Messages) != 1 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"hello"}],"model":"m","usage":{"input_tokens":10,"output_tokens":2}}`))
	}))
	defer srv.Close()

	svc := NewClaudeAIService("test-key", "").WithEndpoint(srv.URL)
	got, err := svc.Complete(context.Background(), "system", "prompt")
	if err != nil || got != "hello" {
		t.Fatalf("got %q, %v", got, err)
	}

	if _, err := NewClaudeAIService("", "").Complete(context.Background(), "s", "p"); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("missing key: %v", err)
	}

	bad := NewClaudeAIService("wrong", "").WithEndpoint(srv.URL)
	if _, err := bad.Complete(context.Background(), "s", "p"); err == nil {
		t.Fatalf("expected error on 401")
	}
}
