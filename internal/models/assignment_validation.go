package models

// Severity ranks remote validation issues.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// ValidationIssue is a single remote validation finding.
type ValidationIssue struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// AssignmentValidationResult is the authoritative verdict on a proposed assignment.
// Any entry in Errors blocks saving; Warnings and Suggestions never do.
type AssignmentValidationResult struct {
	IsValid     bool              `json:"is_valid"`
	Errors      []ValidationIssue `json:"errors"`
	Warnings    []ValidationIssue `json:"warnings"`
	Suggestions []string          `json:"suggestions"`
}

// Blocking reports whether the result prevents saving.
func (r *AssignmentValidationResult) Blocking() bool {
	return r == nil || len(r.Errors) > 0
}
