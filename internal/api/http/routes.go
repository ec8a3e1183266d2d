package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/koshi-quality/assessment/internal/standards"
	"github.com/koshi-quality/assessment/internal/wizard"
)

// MountWizard attaches the wizard session API and the report proxy.
func MountWizard(r chi.Router, svc *wizard.Service, client *standards.Client) {
	r.Post("/sessions", CreateSessionHandler(svc))
	r.Get("/sessions/{sessionID}", GetSessionHandler(svc))
	r.Post("/sessions/{sessionID}/applicability", SetApplicabilityHandler(svc))
	r.Post("/sessions/{sessionID}/answers", AnswerQuestionHandler(svc))
	r.Post("/sessions/{sessionID}/previous", PreviousStepHandler(svc))
	r.Post("/sessions/{sessionID}/submit", SubmitHandler(svc))
	r.Post("/sessions/{sessionID}/reset", ResetSessionHandler(svc))
	if client != nil {
		r.Get("/reports/{reportID}", GetReportHandler(client))
	}
}
