package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/decision-cli/internal/analysis"
	"github.com/sells-group/decision-cli/internal/model"
	"github.com/sells-group/decision-cli/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { st.Close() })

	return st
}

func serverTestForm() model.DecisionFormData {
	return model.DecisionFormData{
		Title:   "Pick a database",
		Context: "Greenfield service, small team",
		Options: []model.Option{
			{ID: "a", Label: "PostgreSQL"},
			{ID: "b", Label: "SQLite"},
		},
		Criteria: []model.Criterion{
			{ID: "c1", Name: "Operational cost", Weight: 8},
			{ID: "c2", Name: "Scalability", Weight: 5},
		},
	}
}

func serverTestResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		Recommendation: model.Recommendation{
			OptionID:    "opt_1",
			OptionLabel: "PostgreSQL",
			Confidence:  0.85,
			Summary:     "PostgreSQL scales further for similar cost.",
		},
		Scores: []model.OptionScore{
			{
				OptionID:    "opt_1",
				OptionLabel: "PostgreSQL",
				TotalScore:  78,
				CriteriaScores: []model.CriterionScore{
					{CriterionID: "crit_1", CriterionName: "Operational cost", Score: 6},
					{CriterionID: "crit_2", CriterionName: "Scalability", Score: 9},
				},
			},
			{
				OptionID:    "opt_2",
				OptionLabel: "SQLite",
				TotalScore:  71,
				CriteriaScores: []model.CriterionScore{
					{CriterionID: "crit_1", CriterionName: "Operational cost", Score: 9},
					{CriterionID: "crit_2", CriterionName: "Scalability", Score: 4},
				},
			},
		},
	}
}

// stubAnalyzer satisfies decisionAnalyzer with a canned response.
type stubAnalyzer struct {
	result *model.AnalysisResult
	err    error
	calls  atomic.Int64
}

func (s *stubAnalyzer) Analyze(ctx context.Context, form model.DecisionFormData, onProgress analysis.ProgressFunc) (*model.AnalysisResult, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestServerHealth(t *testing.T) {
	h := newRouter(newTestStore(t), &stubAnalyzer{})

	rr := doRequest(t, h, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestServerCreateAndGetDecision(t *testing.T) {
	h := newRouter(newTestStore(t), &stubAnalyzer{})

	rr := doRequest(t, h, http.MethodPost, "/decisions", serverTestForm())
	require.Equal(t, http.StatusCreated, rr.Code)

	var created model.Decision
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.StatusDraft, created.Status)

	rr = doRequest(t, h, http.MethodGet, "/decisions/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got model.Decision
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Pick a database", got.Title)
	assert.Len(t, got.Options, 2)
}

func TestServerCreateDecision_BadBody(t *testing.T) {
	h := newRouter(newTestStore(t), &stubAnalyzer{})

	req := httptest.NewRequest(http.MethodPost, "/decisions", bytes.NewReader([]byte("not json")))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid request body")
}

func TestServerGetDecision_NotFound(t *testing.T) {
	h := newRouter(newTestStore(t), &stubAnalyzer{})

	rr := doRequest(t, h, http.MethodGet, "/decisions/nope", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "decision not found")
}

func TestServerListDecisions_StatusFilter(t *testing.T) {
	st := newTestStore(t)
	h := newRouter(st, &stubAnalyzer{})
	ctx := context.Background()

	d1, err := st.CreateDecision(ctx, serverTestForm())
	require.NoError(t, err)
	_, err = st.CreateDecision(ctx, serverTestForm())
	require.NoError(t, err)
	require.NoError(t, st.SaveResult(ctx, d1.ID, serverTestResult()))

	rr := doRequest(t, h, http.MethodGet, "/decisions?status=done", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var decisions []model.Decision
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decisions))
	require.Len(t, decisions, 1)
	assert.Equal(t, d1.ID, decisions[0].ID)
}

func TestServerListDecisions_Empty(t *testing.T) {
	h := newRouter(newTestStore(t), &stubAnalyzer{})

	rr := doRequest(t, h, http.MethodGet, "/decisions", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestServerUpdateDecision(t *testing.T) {
	st := newTestStore(t)
	h := newRouter(st, &stubAnalyzer{})

	d, err := st.CreateDecision(context.Background(), serverTestForm())
	require.NoError(t, err)

	form := serverTestForm()
	form.Title = "Pick a database (revised)"
	rr := doRequest(t, h, http.MethodPut, "/decisions/"+d.ID, form)
	require.Equal(t, http.StatusOK, rr.Code)

	var updated model.Decision
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, "Pick a database (revised)", updated.Title)
}

func TestServerDeleteDecision(t *testing.T) {
	st := newTestStore(t)
	h := newRouter(st, &stubAnalyzer{})

	d, err := st.CreateDecision(context.Background(), serverTestForm())
	require.NoError(t, err)

	rr := doRequest(t, h, http.MethodDelete, "/decisions/"+d.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = doRequest(t, h, http.MethodGet, "/decisions/"+d.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServerAnalyze_Accepted(t *testing.T) {
	st := newTestStore(t)
	stub := &stubAnalyzer{result: serverTestResult()}
	h := newRouter(st, stub)

	d, err := st.CreateDecision(context.Background(), serverTestForm())
	require.NoError(t, err)

	rr := doRequest(t, h, http.MethodPost, fmt.Sprintf("/decisions/%s/analyze", d.ID), nil)
	require.Equal(t, http.StatusAccepted, rr.Code)

	// The analysis runs in the background; wait for the result to land.
	require.Eventually(t, func() bool {
		got, err := st.GetDecision(context.Background(), d.ID)
		return err == nil && got.Status == model.StatusDone && got.Result != nil
	}, 2*time.Second, 10*time.Millisecond)

	got, err := st.GetDecision(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, "PostgreSQL", got.Result.Recommendation.OptionLabel)
	assert.EqualValues(t, 1, stub.calls.Load())
}

func TestServerAnalyze_RevertsOnFailure(t *testing.T) {
	st := newTestStore(t)
	stub := &stubAnalyzer{err: analysis.ErrAnalysisFailed}
	h := newRouter(st, stub)

	d, err := st.CreateDecision(context.Background(), serverTestForm())
	require.NoError(t, err)

	rr := doRequest(t, h, http.MethodPost, fmt.Sprintf("/decisions/%s/analyze", d.ID), nil)
	require.Equal(t, http.StatusAccepted, rr.Code)

	require.Eventually(t, func() bool {
		got, err := st.GetDecision(context.Background(), d.ID)
		return err == nil && got.Status == model.StatusDraft && stub.calls.Load() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServerAnalyze_ConflictWhileAnalyzing(t *testing.T) {
	st := newTestStore(t)
	h := newRouter(st, &stubAnalyzer{result: serverTestResult()})
	ctx := context.Background()

	d, err := st.CreateDecision(ctx, serverTestForm())
	require.NoError(t, err)
	require.NoError(t, st.UpdateStatus(ctx, d.ID, model.StatusAnalyzing))

	rr := doRequest(t, h, http.MethodPost, fmt.Sprintf("/decisions/%s/analyze", d.ID), nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "already in progress")
}

func TestServerAnalyze_RejectsInvalidForm(t *testing.T) {
	st := newTestStore(t)
	stub := &stubAnalyzer{result: serverTestResult()}
	h := newRouter(st, stub)

	form := serverTestForm()
	form.Criteria = nil
	d, err := st.CreateDecision(context.Background(), form)
	require.NoError(t, err)

	rr := doRequest(t, h, http.MethodPost, fmt.Sprintf("/decisions/%s/analyze", d.ID), nil)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var v analysis.Validation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	assert.False(t, v.Valid)
	assert.Contains(t, v.Errors, "At least 1 criterion is required")
	assert.EqualValues(t, 0, stub.calls.Load())
}

func TestServerWhatIf(t *testing.T) {
	st := newTestStore(t)
	h := newRouter(st, &stubAnalyzer{})
	ctx := context.Background()

	d, err := st.CreateDecision(ctx, serverTestForm())
	require.NoError(t, err)
	require.NoError(t, st.SaveResult(ctx, d.ID, serverTestResult()))

	// Flip the weights so scalability dominates: SQLite should drop further
	// behind and PostgreSQL stay first.
	edited := serverTestForm().Criteria
	edited[0].Weight = 2
	edited[1].Weight = 10

	rr := doRequest(t, h, http.MethodPost, fmt.Sprintf("/decisions/%s/whatif", d.ID),
		map[string]any{"criteria": edited})
	require.Equal(t, http.StatusOK, rr.Code)

	var ranked []analysis.RankedScore
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ranked))
	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "PostgreSQL", ranked[0].OptionLabel)

	// Nothing is persisted.
	got, err := st.GetDecision(ctx, d.ID)
	require.NoError(t, err)
	assert.InDelta(t, 78, got.Result.Scores[0].TotalScore, 0.001)
}

func TestServerWhatIf_NoResult(t *testing.T) {
	st := newTestStore(t)
	h := newRouter(st, &stubAnalyzer{})

	d, err := st.CreateDecision(context.Background(), serverTestForm())
	require.NoError(t, err)

	rr := doRequest(t, h, http.MethodPost, fmt.Sprintf("/decisions/%s/whatif", d.ID),
		map[string]any{"criteria": serverTestForm().Criteria})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "no analysis result")
}

func TestServerTemplates(t *testing.T) {
	h := newRouter(newTestStore(t), &stubAnalyzer{})

	rr := doRequest(t, h, http.MethodGet, "/templates", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var templates []model.DecisionTemplate
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &templates))
	assert.NotEmpty(t, templates)
}

func TestServeCmd_Metadata(t *testing.T) {
	assert.Equal(t, "serve", serveCmd.Use)
	assert.NotEmpty(t, serveCmd.Short)

	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "0", flag.DefValue)
}
