package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koshi-quality/assessment/internal/wizard"
)

type scriptedAPI struct {
	requirements []wizard.Requirement
	submitErr    error
	result       wizard.Result
	submissions  int
}

func (a *scriptedAPI) FetchRequirements(context.Context) ([]wizard.Requirement, error) {
	return a.requirements, nil
}

func (a *scriptedAPI) SubmitAssessment(context.Context, wizard.SubmissionRequest) (wizard.Result, error) {
	a.submissions++
	if a.submitErr != nil {
		return wizard.Result{}, a.submitErr
	}
	return a.result, nil
}

func catalog() []wizard.Requirement {
	return []wizard.Requirement{
		{ID: 1, Name: "Food Safety", Questions: []wizard.Question{
			{ID: 11, Text: "Do you keep temperature logs", Points: 5},
			{ID: 12, Text: "Is raw food stored separately", Points: 5},
		}},
		{ID: 2, Name: "Hygiene", Questions: []wizard.Question{
			{ID: 21, Text: "Do staff wear protective gear", Points: 3},
		}},
	}
}

func newTestRouter(api *scriptedAPI) http.Handler {
	svc := wizard.NewService(wizard.NewInMemoryStore(), api, nil, wizard.Options{AllowPrevious: true})
	r := chi.NewRouter()
	MountWizard(r, svc, nil)
	return r
}

type viewResp struct {
	ID            string         `json:"id"`
	State         string         `json:"state"`
	StepIndex     int            `json:"step_index"`
	QuestionIndex int            `json:"question_index"`
	Progress      int            `json:"progress"`
	CanFinish     bool           `json:"can_finish"`
	Answers       map[string]any `json:"answers"`
}

func do(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, viewResp) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var v viewResp
	if rec.Code == 200 {
		_ = json.Unmarshal(rec.Body.Bytes(), &v)
	}
	return rec, v
}

func TestWizardHTTPFlow(t *testing.T) {
	api := &scriptedAPI{
		requirements: catalog(),
		result:       wizard.Result{TotalPoints: 13, EarnedPoints: 8, FileURL: "https://reports.example.com/9.pdf"},
	}
	h := newTestRouter(api)

	rec, v := do(t, h, "POST", "/sessions", nil)
	require.Equal(t, 200, rec.Code)
	require.NotEmpty(t, v.ID)
	assert.Equal(t, "awaiting_applicability", v.State)
	assert.Equal(t, 0, v.Progress)
	sessionPath := "/sessions/" + v.ID

	rec, v = do(t, h, "POST", sessionPath+"/applicability", map[string]any{"step_index": 0, "value": "yes"})
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "answering_question", v.State)

	rec, v = do(t, h, "POST", sessionPath+"/answers", map[string]any{"question_id": 11, "answer": true})
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, 1, v.QuestionIndex)

	rec, v = do(t, h, "POST", sessionPath+"/answers", map[string]any{"question_id": 12, "answer": false})
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, 1, v.StepIndex)
	assert.Equal(t, "awaiting_applicability", v.State)

	rec, v = do(t, h, "POST", sessionPath+"/applicability", map[string]any{"step_index": 1, "value": "yes"})
	require.Equal(t, 200, rec.Code)

	rec, v = do(t, h, "POST", sessionPath+"/answers", map[string]any{"question_id": 21, "answer": true})
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "submission_ready", v.State)
	assert.Equal(t, 100, v.Progress)
	assert.True(t, v.CanFinish)

	rec, _ = do(t, h, "POST", sessionPath+"/submit",
		map[string]any{"name": "Asha", "email": "asha@example.com", "phone": "9800000001"})
	require.Equal(t, 200, rec.Code)
	var res wizard.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 8.0, res.EarnedPoints)
	assert.Equal(t, 1, api.submissions)

	rec, v = do(t, h, "GET", sessionPath, nil)
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "completed", v.State)
}

func TestWizardHTTPSequenceConflict(t *testing.T) {
	h := newTestRouter(&scriptedAPI{requirements: catalog()})

	rec, v := do(t, h, "POST", "/sessions", nil)
	require.Equal(t, 200, rec.Code)

	rec, _ = do(t, h, "POST", "/sessions/"+v.ID+"/answers", map[string]any{"question_id": 11, "answer": true})
	assert.Equal(t, 409, rec.Code)
}

func TestWizardHTTPValidation(t *testing.T) {
	h := newTestRouter(&scriptedAPI{requirements: catalog()})

	rec, v := do(t, h, "POST", "/sessions", nil)
	require.Equal(t, 200, rec.Code)
	sessionPath := "/sessions/" + v.ID

	for i := 0; i < 2; i++ {
		rec, _ = do(t, h, "POST", sessionPath+"/applicability",
			map[string]any{"step_index": i, "value": "no"})
		require.Equal(t, 200, rec.Code)
	}

	rec, _ = do(t, h, "POST", sessionPath+"/submit",
		map[string]any{"name": "", "email": "bad", "phone": "1"})
	assert.Equal(t, 422, rec.Code)
	assert.Contains(t, rec.Body.String(), "email:")
}

func TestWizardHTTPSubmitFailureIsRetryable(t *testing.T) {
	api := &scriptedAPI{
		requirements: catalog(),
		submitErr:    fmt.Errorf("upstream: %w", wizard.ErrSubmission),
	}
	h := newTestRouter(api)

	rec, v := do(t, h, "POST", "/sessions", nil)
	require.Equal(t, 200, rec.Code)
	sessionPath := "/sessions/" + v.ID

	for i := 0; i < 2; i++ {
		rec, _ = do(t, h, "POST", sessionPath+"/applicability",
			map[string]any{"step_index": i, "value": "no"})
		require.Equal(t, 200, rec.Code)
	}

	contact := map[string]any{"name": "Asha", "email": "asha@example.com", "phone": "9800000001"}
	rec, _ = do(t, h, "POST", sessionPath+"/submit", contact)
	assert.Equal(t, 502, rec.Code)

	rec, v = do(t, h, "GET", sessionPath, nil)
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "submission_ready", v.State)
	assert.True(t, v.CanFinish)

	api.submitErr = nil
	api.result = wizard.Result{TotalPoints: 13, EarnedPoints: 13, FileURL: "f"}
	rec, _ = do(t, h, "POST", sessionPath+"/submit", contact)
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, 2, api.submissions)
}

func TestWizardHTTPUnknownSession(t *testing.T) {
	h := newTestRouter(&scriptedAPI{requirements: catalog()})
	rec, _ := do(t, h, "GET", "/sessions/does-not-exist", nil)
	assert.Equal(t, 404, rec.Code)
}
