package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/koshi-quality/assessment/internal/standards"
	"github.com/koshi-quality/assessment/internal/wizard"
)

// sessionView is what the frontend renders: the session plus the derived
// progress and finish gate.
type sessionView struct {
	*wizard.Session
	Progress  int  `json:"progress"`
	CanFinish bool `json:"can_finish"`
}

func view(s *wizard.Session) sessionView {
	return sessionView{Session: s, Progress: s.Progress(), CanFinish: s.CanFinish()}
}

func CreateSessionHandler(svc *wizard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.Start(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(view(s))
	}
}

func GetSessionHandler(svc *wizard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.Get(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(view(s))
	}
}

func SetApplicabilityHandler(svc *wizard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			StepIndex int    `json:"step_index"`
			Value     string `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		s, err := svc.SetApplicability(r.Context(), chi.URLParam(r, "sessionID"),
			req.StepIndex, wizard.Applicability(req.Value))
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(view(s))
	}
}

func AnswerQuestionHandler(svc *wizard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuestionID int64 `json:"question_id"`
			Answer     bool  `json:"answer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		s, err := svc.AnswerQuestion(r.Context(), chi.URLParam(r, "sessionID"), req.QuestionID, req.Answer)
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(view(s))
	}
}

func PreviousStepHandler(svc *wizard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.Previous(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(view(s))
	}
}

func SubmitHandler(svc *wizard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var contact wizard.Contact
		if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		res, err := svc.Submit(r.Context(), chi.URLParam(r, "sessionID"), contact)
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}

func ResetSessionHandler(svc *wizard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.Reset(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(view(s))
	}
}

// GetReportHandler proxies the remote report-by-id document for the
// report page; the wizard core never consumes it.
func GetReportHandler(client *standards.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "reportID"), 10, 64)
		if err != nil {
			http.Error(w, "bad report id", 400)
			return
		}
		report, err := client.FetchReport(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), 502)
			return
		}
		_ = json.NewEncoder(w).Encode(report)
	}
}

func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wizard.ErrNotFound):
		http.Error(w, err.Error(), 404)
	case errors.Is(err, wizard.ErrValidation):
		http.Error(w, err.Error(), 422)
	case errors.Is(err, wizard.ErrSequence):
		http.Error(w, err.Error(), 409)
	case errors.Is(err, wizard.ErrLoad), errors.Is(err, wizard.ErrSubmission):
		http.Error(w, err.Error(), 502)
	default:
		http.Error(w, err.Error(), 500)
	}
}
