package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/playperu/countryquiz/internal/countryquiz"
	"github.com/playperu/countryquiz/internal/handler/health"
	"github.com/playperu/countryquiz/internal/store"
)

// Every metric differs between every pair, so exactly one side is correct.
func testCatalog(t *testing.T) *countryquiz.Catalog {
	t.Helper()
	c, err := countryquiz.NewCatalog([]countryquiz.Country{
		{Code: "PER", Name: "Peru", ISO2: "PE", Continent: "South America", Population: 34_350_000, Area: 1_285_216, GDP: 267.6e9, GDPPerCapita: 7790, Density: 26.7, Literacy: 94.5, HDI: 0.762, LifeExpectancy: 76.7},
		{Code: "JPN", Name: "Japan", ISO2: "JP", Continent: "Asia", Population: 124_500_000, Area: 377_975, GDP: 4_213e9, GDPPerCapita: 33_840, Density: 329.4, Literacy: 99.1, HDI: 0.920, LifeExpectancy: 84.8},
		{Code: "ISL", Name: "Iceland", ISO2: "IS", Continent: "Europe", Population: 387_800, Area: 103_000, GDP: 31.0e9, GDPPerCapita: 79_940, Density: 3.8, Literacy: 99.0, HDI: 0.959, LifeExpectancy: 82.9},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

type failingSaveStore struct {
	store.Store
}

func (failingSaveStore) Save(context.Context, *countryquiz.GameState) error {
	return errors.New("disk full")
}

type failingLoadStore struct {
	store.Store
}

func (failingLoadStore) LoadOrCreate(context.Context, string) (*countryquiz.GameState, error) {
	return nil, errors.New("connection refused")
}

type testEnv struct {
	t        *testing.T
	catalog  *countryquiz.Catalog
	sessions *Sessions
	broker   *Broker
	handler  http.Handler
}

func newTestEnv(t *testing.T, st store.Store) *testEnv {
	t.Helper()
	catalog := testCatalog(t)
	sessions := NewSessions(st, catalog, countryquiz.NewRand(42), time.Minute)
	broker := NewBroker()
	logger := slog.New(slog.DiscardHandler)
	return &testEnv{
		t:        t,
		catalog:  catalog,
		sessions: sessions,
		broker:   broker,
		handler:  newRouter(logger, catalog, sessions, broker, map[string]health.Checker{"store": st}),
	}
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			e.t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}

func (e *testEnv) newQuestion(player string, body any) QuestionResponse {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/api/players/"+player+"/questions", body)
	if rec.Code != http.StatusOK {
		e.t.Fatalf("new question: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	return decode[QuestionResponse](e.t, rec)
}

// sides returns the correct and the incorrect choice for q.
func (e *testEnv) sides(q QuestionResponse) (right, wrong string) {
	e.t.Helper()
	m, err := countryquiz.ParseMetric(q.Metric)
	if err != nil {
		e.t.Fatalf("ParseMetric(%q): %v", q.Metric, err)
	}
	spec, _ := countryquiz.Lookup(m)
	a, _ := e.catalog.ByCode(q.A.Code)
	b, _ := e.catalog.ByCode(q.B.Code)
	if spec.Value(a) > spec.Value(b) {
		return "a", "b"
	}
	return "b", "a"
}

func (e *testEnv) answer(player, questionID, choice string) *httptest.ResponseRecorder {
	e.t.Helper()
	return e.do(http.MethodPost, "/api/players/"+player+"/answers", AnswerRequest{QuestionID: questionID, Choice: choice})
}

func TestPlayRound(t *testing.T) {
	env := newTestEnv(t, store.NewMemoryStore())

	q := env.newQuestion("alice", nil)
	if q.ID == "" {
		t.Fatal("question has no id")
	}
	if q.A.Code == q.B.Code {
		t.Fatalf("question compares %s with itself", q.A.Code)
	}
	if q.Prompt == "" || q.Label == "" {
		t.Errorf("question missing prompt or label: %+v", q)
	}

	right, _ := env.sides(q)
	rec := env.answer("alice", q.ID, right)
	if rec.Code != http.StatusOK {
		t.Fatalf("answer: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	resp := decode[AnswerResponse](t, rec)
	if !resp.IsCorrect {
		t.Errorf("isCorrect = false, want true")
	}
	if !resp.Persisted {
		t.Errorf("persisted = false, want true")
	}
	if resp.DisplayA == "" || resp.DisplayB == "" {
		t.Errorf("missing display values: %+v", resp)
	}
	if resp.Message == "" {
		t.Errorf("missing message")
	}
	if resp.State.CurrentScore != 1 || resp.State.CurrentStreak != 1 || resp.State.TotalAnswered != 1 {
		t.Errorf("state = %+v, want score 1, streak 1, answered 1", resp.State)
	}
	if resp.State.Accuracy != 1 {
		t.Errorf("accuracy = %v, want 1", resp.State.Accuracy)
	}

	q = env.newQuestion("alice", nil)
	_, wrong := env.sides(q)
	resp = decode[AnswerResponse](t, env.answer("alice", q.ID, wrong))
	if resp.IsCorrect {
		t.Errorf("isCorrect = true, want false")
	}
	st := resp.State
	if st.CurrentStreak != 0 || st.BestStreak != 1 || st.CurrentScore != 1 || st.HighScore != 1 {
		t.Errorf("state after miss = %+v", st)
	}
	if st.TotalCorrect != 1 || st.TotalAnswered != 2 {
		t.Errorf("totals = %d/%d, want 1/2", st.TotalCorrect, st.TotalAnswered)
	}

	rec = env.do(http.MethodGet, "/api/players/alice/state", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("state: status = %d", rec.Code)
	}
	got := decode[StateResponse](t, rec)
	if got.PlayerKey != "alice" || got.TotalAnswered != 2 || got.Accuracy != 0.5 {
		t.Errorf("GET state = %+v", got)
	}
	if got.AccuracyComment == "" {
		t.Errorf("missing accuracy comment")
	}
	if got.LastPlayedAt == nil {
		t.Errorf("lastPlayedAt not set")
	}
}

func TestAnswerConflicts(t *testing.T) {
	env := newTestEnv(t, store.NewMemoryStore())

	rec := env.answer("bob", "nope", "a")
	if rec.Code != http.StatusConflict {
		t.Errorf("answer without question: status = %d, want %d", rec.Code, http.StatusConflict)
	}

	first := env.newQuestion("bob", nil)
	second := env.newQuestion("bob", nil)
	if first.ID == second.ID {
		t.Fatal("question ids repeat")
	}

	rec = env.answer("bob", first.ID, "a")
	if rec.Code != http.StatusConflict {
		t.Errorf("stale answer: status = %d, want %d", rec.Code, http.StatusConflict)
	}

	rec = env.answer("bob", second.ID, "c")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid choice: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	rec = env.answer("bob", second.ID, "a")
	if rec.Code != http.StatusOK {
		t.Fatalf("answer after invalid choice: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = env.answer("bob", second.ID, "b")
	if rec.Code != http.StatusConflict {
		t.Errorf("second answer: status = %d, want %d", rec.Code, http.StatusConflict)
	}

	st := decode[StateResponse](t, env.do(http.MethodGet, "/api/players/bob/state", nil))
	if st.TotalAnswered != 1 {
		t.Errorf("totalAnswered = %d, want 1", st.TotalAnswered)
	}
}

func TestAnswerBadRequests(t *testing.T) {
	env := newTestEnv(t, store.NewMemoryStore())
	q := env.newQuestion("carol", nil)

	tests := []struct {
		name string
		body any
	}{
		{"missing question id", map[string]string{"choice": "a"}},
		{"missing choice", map[string]string{"questionId": q.ID}},
		{"unknown field", map[string]string{"questionId": q.ID, "choice": "a", "extra": "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/players/carol/answers", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestReset(t *testing.T) {
	env := newTestEnv(t, store.NewMemoryStore())

	play := func() {
		q := env.newQuestion("dave", nil)
		right, _ := env.sides(q)
		if rec := env.answer("dave", q.ID, right); rec.Code != http.StatusOK {
			t.Fatalf("answer: status = %d", rec.Code)
		}
	}
	play()
	play()

	rec := env.do(http.MethodPost, "/api/players/dave/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("session reset: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	resp := decode[ResetResponse](t, rec)
	if resp.Message == "" {
		t.Errorf("missing reset message")
	}
	st := resp.State
	if st.CurrentScore != 0 || st.CurrentStreak != 0 {
		t.Errorf("session reset kept run: %+v", st)
	}
	if st.HighScore != 2 || st.BestStreak != 2 || st.TotalAnswered != 2 {
		t.Errorf("session reset cleared lifetime stats: %+v", st)
	}

	if rec := env.answer("dave", "anything", "a"); rec.Code != http.StatusConflict {
		t.Errorf("answer after reset: status = %d, want %d", rec.Code, http.StatusConflict)
	}

	rec = env.do(http.MethodPost, "/api/players/dave/reset", ResetRequest{Scope: "full"})
	if rec.Code != http.StatusOK {
		t.Fatalf("full reset: status = %d", rec.Code)
	}
	st = decode[ResetResponse](t, rec).State
	if st.HighScore != 0 || st.BestStreak != 0 || st.TotalAnswered != 0 || st.TotalCorrect != 0 {
		t.Errorf("full reset kept stats: %+v", st)
	}
	if st.PlayerKey != "dave" {
		t.Errorf("playerKey = %q, want dave", st.PlayerKey)
	}

	rec = env.do(http.MethodPost, "/api/players/dave/reset", ResetRequest{Scope: "everything"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad scope: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSelectMetric(t *testing.T) {
	env := newTestEnv(t, store.NewMemoryStore())

	rec := env.do(http.MethodPut, "/api/players/erin/metric", MetricRequest{Metric: "area"})
	if rec.Code != http.StatusOK {
		t.Fatalf("select metric: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := decode[MetricResponse](t, rec).State.SelectedMetric; got != "area" {
		t.Errorf("selectedMetric = %q, want area", got)
	}

	for range 5 {
		if q := env.newQuestion("erin", nil); q.Metric != "area" {
			t.Errorf("question metric = %q, want area", q.Metric)
		}
	}

	if q := env.newQuestion("erin", QuestionRequest{Metric: "gdp"}); q.Metric != "gdp" {
		t.Errorf("override metric = %q, want gdp", q.Metric)
	}
	st := decode[StateResponse](t, env.do(http.MethodGet, "/api/players/erin/state", nil))
	if st.SelectedMetric != "area" {
		t.Errorf("override changed preference to %q", st.SelectedMetric)
	}

	rec = env.do(http.MethodPut, "/api/players/erin/metric", MetricRequest{Metric: ""})
	if rec.Code != http.StatusOK {
		t.Fatalf("clear metric: status = %d", rec.Code)
	}
	if got := decode[MetricResponse](t, rec).State.SelectedMetric; got != "" {
		t.Errorf("selectedMetric = %q, want empty", got)
	}

	rec = env.do(http.MethodPut, "/api/players/erin/metric", MetricRequest{Metric: "happiness"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown metric: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	rec = env.do(http.MethodPost, "/api/players/erin/questions", QuestionRequest{Metric: "happiness"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown override: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestInvalidPlayerKey(t *testing.T) {
	env := newTestEnv(t, store.NewMemoryStore())

	for _, key := range []string{"a.b", "with%20space", "0123456789012345678901234567890123456789012345678901234567890123456789"} {
		rec := env.do(http.MethodGet, "/api/players/"+key+"/state", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("key %q: status = %d, want %d", key, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestSaveFailureKeepsPlaying(t *testing.T) {
	env := newTestEnv(t, failingSaveStore{store.NewMemoryStore()})

	q := env.newQuestion("frank", nil)
	right, _ := env.sides(q)
	rec := env.answer("frank", q.ID, right)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	resp := decode[AnswerResponse](t, rec)
	if resp.Persisted {
		t.Errorf("persisted = true, want false")
	}
	if resp.State.CurrentScore != 1 {
		t.Errorf("currentScore = %d, want 1", resp.State.CurrentScore)
	}

	st := decode[StateResponse](t, env.do(http.MethodGet, "/api/players/frank/state", nil))
	if st.CurrentScore != 1 {
		t.Errorf("in-memory state lost: %+v", st)
	}
}

func TestLoadFailure(t *testing.T) {
	env := newTestEnv(t, failingLoadStore{store.NewMemoryStore()})

	rec := env.do(http.MethodGet, "/api/players/gina/state", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestStateSurvivesRestart(t *testing.T) {
	st := store.NewMemoryStore()
	env := newTestEnv(t, st)

	q := env.newQuestion("hana", nil)
	right, _ := env.sides(q)
	env.answer("hana", q.ID, right)
	env.do(http.MethodPut, "/api/players/hana/metric", MetricRequest{Metric: "hdi"})

	restarted := newTestEnv(t, st)
	got := decode[StateResponse](t, restarted.do(http.MethodGet, "/api/players/hana/state", nil))
	if got.CurrentScore != 1 || got.TotalAnswered != 1 || got.SelectedMetric != "hdi" {
		t.Errorf("restored state = %+v", got)
	}
}

func TestListMetrics(t *testing.T) {
	env := newTestEnv(t, store.NewMemoryStore())

	rec := env.do(http.MethodGet, "/api/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	items := decode[[]MetricInfo](t, rec)
	if len(items) != len(countryquiz.Metrics()) {
		t.Fatalf("got %d metrics, want %d", len(items), len(countryquiz.Metrics()))
	}
	if items[0].Key != "population" {
		t.Errorf("first metric = %q, want population", items[0].Key)
	}
	for _, it := range items {
		if it.Label == "" || it.Prompt == "" {
			t.Errorf("metric %q missing label or prompt", it.Key)
		}
	}
}

func TestListCountries(t *testing.T) {
	env := newTestEnv(t, store.NewMemoryStore())

	items := decode[[]CountryListItem](t, env.do(http.MethodGet, "/api/countries", nil))
	if len(items) != 3 {
		t.Fatalf("got %d countries, want 3", len(items))
	}
	if items[0].Value != nil || items[0].Display != "" {
		t.Errorf("value present without metric: %+v", items[0])
	}
	if items[0].Flag != "🇵🇪" {
		t.Errorf("flag = %q, want 🇵🇪", items[0].Flag)
	}

	items = decode[[]CountryListItem](t, env.do(http.MethodGet, "/api/countries?metric=population", nil))
	if items[1].Value == nil || *items[1].Value != 124_500_000 {
		t.Errorf("JPN value = %v", items[1].Value)
	}
	if items[1].Display != "124.50M" {
		t.Errorf("JPN display = %q, want 124.50M", items[1].Display)
	}

	rec := env.do(http.MethodGet, "/api/countries?metric=bogus", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown metric: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t, store.NewMemoryStore())

	rec := env.do(http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
