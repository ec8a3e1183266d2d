package wizard

// Question is one yes/no item inside a requirement. Immutable for the
// lifetime of a session.
type Question struct {
	ID     int64   `json:"id"`
	Text   string  `json:"text"`
	Points float64 `json:"points"`
}

// Requirement is a named group of questions; the fetched order of
// requirements defines the step order of the wizard.
type Requirement struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// Applicability is the answer to "does this requirement apply to you".
// A step marked "no" is skipped entirely and contributes no answers.
type Applicability string

const (
	ApplicabilityYes Applicability = "yes"
	ApplicabilityNo  Applicability = "no"
)

// State of a wizard session. Loading and load-error never appear here:
// a session only exists after a successful requirements fetch.
type State string

const (
	StateAwaitingApplicability State = "awaiting_applicability"
	StateAnsweringQuestion     State = "answering_question"
	StateSubmissionReady       State = "submission_ready"
	StateSubmitting            State = "submitting"
	StateCompleted             State = "completed"
)

// Contact is collected once, right before submission.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Result is what the scoring API returns for a submitted assessment.
type Result struct {
	TotalPoints  float64 `json:"total_points"`
	EarnedPoints float64 `json:"earned_points"`
	FileURL      string  `json:"file_url"`
}

// Session holds the full wizard state for one visitor.
type Session struct {
	ID            string                  `json:"id"`
	Requirements  []Requirement           `json:"requirements"`
	State         State                   `json:"state"`
	StepIndex     int                     `json:"step_index"`
	QuestionIndex int                     `json:"question_index"`
	Applicability map[int64]Applicability `json:"applicability"` // requirement id -> yes/no
	Answers       map[int64]bool          `json:"answers"`       // question id -> answer
	Contact       *Contact                `json:"contact,omitempty"`
	Result        *Result                 `json:"result,omitempty"`
}

// Wire types for the calculate-points endpoint. Answers is omitted
// entirely for requirements marked not relevant.
type SubmissionAnswer struct {
	QuestionID int64 `json:"question_id"`
	Answer     bool  `json:"answer"`
}

type SubmissionRequirement struct {
	RequirementID int64              `json:"requirement_id"`
	IsRelevant    bool               `json:"is_relevant"`
	Answers       []SubmissionAnswer `json:"answers,omitempty"`
}

type SubmissionRequest struct {
	Name         string                  `json:"name"`
	Email        string                  `json:"email"`
	Phone        string                  `json:"phone"`
	Requirements []SubmissionRequirement `json:"requirements"`
}
