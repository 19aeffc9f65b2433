package server

import (
	"net/http"

	"github.com/goccy/go-json"
	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/countryquiz/internal/handler/health"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

type PlayerPath struct {
	Player string `path:"player" pattern:"^[A-Za-z0-9_-]{1,64}$"`
}

type CountriesQuery struct {
	Metric string `query:"metric" description:"Metric key; adds each country's value for it."`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Country Quiz API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Higher-or-lower trivia over country statistics.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Reports whether the game state store is reachable.")
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/metrics
	listMetrics, _ := r.NewOperationContext(http.MethodGet, "/api/metrics")
	listMetrics.SetSummary("List metrics")
	listMetrics.SetDescription("Every statistic a question can ask about.")
	listMetrics.AddRespStructure([]MetricInfo{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listMetrics)

	// GET /api/countries
	listCountries, _ := r.NewOperationContext(http.MethodGet, "/api/countries")
	listCountries.SetSummary("List countries")
	listCountries.SetDescription("The country catalog in play.")
	listCountries.AddReqStructure(CountriesQuery{})
	listCountries.AddRespStructure([]CountryListItem{}, openapi.WithHTTPStatus(http.StatusOK))
	listCountries.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(listCountries)

	// GET /api/players/{player}/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/players/{player}/state")
	getState.SetSummary("Get player state")
	getState.SetDescription("Scores, streaks and accuracy. Unknown players start from zero.")
	getState.AddReqStructure(PlayerPath{})
	getState.AddRespStructure(StateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getState.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	getState.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getState)

	// POST /api/players/{player}/questions
	postQuestion, _ := r.NewOperationContext(http.MethodPost, "/api/players/{player}/questions")
	postQuestion.SetSummary("New question")
	postQuestion.SetDescription("Draws two distinct countries. Replaces any outstanding question.")
	postQuestion.AddReqStructure(struct {
		PlayerPath
		QuestionRequest
	}{})
	postQuestion.AddRespStructure(QuestionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postQuestion)

	// POST /api/players/{player}/answers
	postAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/players/{player}/answers")
	postAnswer.SetSummary("Submit answer")
	postAnswer.SetDescription("Answers the outstanding question once. A tie counts as correct.")
	postAnswer.AddReqStructure(struct {
		PlayerPath
		AnswerRequest
	}{})
	postAnswer.AddRespStructure(AnswerResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postAnswer)

	// POST /api/players/{player}/reset
	postReset, _ := r.NewOperationContext(http.MethodPost, "/api/players/{player}/reset")
	postReset.SetSummary("Reset progress")
	postReset.SetDescription("Session scope clears the current run. Full scope also clears bests and totals.")
	postReset.AddReqStructure(struct {
		PlayerPath
		ResetRequest
	}{})
	postReset.AddRespStructure(ResetResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postReset.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postReset)

	// PUT /api/players/{player}/metric
	putMetric, _ := r.NewOperationContext(http.MethodPut, "/api/players/{player}/metric")
	putMetric.SetSummary("Select metric")
	putMetric.SetDescription("Sets the metric used for new questions. An empty key clears it.")
	putMetric.AddReqStructure(struct {
		PlayerPath
		MetricRequest
	}{})
	putMetric.AddRespStructure(MetricResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	putMetric.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(putMetric)

	// GET /api/players/{player}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/players/{player}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events with the player's progress after each change.")
	getEvents.AddReqStructure(PlayerPath{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
