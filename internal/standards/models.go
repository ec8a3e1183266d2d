package standards

import "github.com/koshi-quality/assessment/internal/wizard"

// requirementsEnvelope is the paginated wire shape of the requirements
// endpoint. Results is a pointer so a missing key can be told apart from
// an empty list when validating.
type requirementsEnvelope struct {
	Count    int                   `json:"count"`
	Next     *string               `json:"next"`
	Previous *string               `json:"previous"`
	Results  *[]wizard.Requirement `json:"results"`
}

type ReportAnswer struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"` // "Yes" | "No"
	Points   float64 `json:"points"`
}

type ReportRequirement struct {
	RequirementName string         `json:"requirement_name"`
	Answers         []ReportAnswer `json:"answers"`
}

// Report is the downstream report-by-id document. The wizard itself never
// consumes it; the gateway only proxies it for the report page.
type Report struct {
	ID           int64               `json:"id"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Phone        string              `json:"phone"`
	EarnedPoints float64             `json:"earned_points"`
	Category     string              `json:"category"`
	Percentage   float64             `json:"percentage"`
	FileURL      string              `json:"file_url"`
	CreatedAt    string              `json:"created_at"`
	Requirements []ReportRequirement `json:"requirements"`
}
