package models

type CategoryKey string

const (
	CriticalErrorCheck     CategoryKey = "critical_error_check"
	CompletenessChecks     CategoryKey = "completeness_checks"
	DomainChecks           CategoryKey = "domain_checks"
	DuplicateRowsChecks    CategoryKey = "duplicate_rows_checks"
	FormatValidationChecks CategoryKey = "format_validation_checks"
	GeospatialChecks       CategoryKey = "geospatial_checks"
	RangeChecks            CategoryKey = "range_checks"
)

// CategoryKeys lists every category in report order.
var CategoryKeys = []CategoryKey{
	CriticalErrorCheck,
	CompletenessChecks,
	DomainChecks,
	DuplicateRowsChecks,
	FormatValidationChecks,
	GeospatialChecks,
	RangeChecks,
}

// Check is one assertion result produced by the upstream DQ engine.
type Check struct {
	Assertion     string  `json:"assertion"`
	Column        string  `json:"column,omitempty"`
	Description   string  `json:"description"`
	CountFailed   int     `json:"count_failed"`
	CountPassed   int     `json:"count_passed"`
	CountOverall  int     `json:"count_overall"`
	PercentFailed float64 `json:"percent_failed"`
	PercentPassed float64 `json:"percent_passed"`
}

// Consistent reports whether the failed and passed counts add up to the overall count.
func (c Check) Consistent() bool {
	return c.CountFailed+c.CountPassed == c.CountOverall
}

// Label is the human-readable name of the check.
func (c Check) Label() string {
	if c.Description != "" {
		return c.Description
	}
	return c.Assertion
}
