package dq

import (
	"fmt"

	"dq-report-service/internal/models"
)

// FailurePredicate decides whether a check needs attention in a report.
type FailurePredicate func(models.Check) bool

// FailingRows flags checks that rejected at least one row.
func FailingRows(c models.Check) bool {
	return c.CountFailed > 0
}

// LegacyPassedNot100 is the predicate the portal shipped with. It compares an
// absolute row count against 100, so a check with 50/50 rows passing is
// reported as failing. Kept selectable for consumers that rely on it.
func LegacyPassedNot100(c models.Check) bool {
	return c.CountPassed != 100
}

const (
	FilterFailingRows = "failing_rows"
	FilterLegacy      = "legacy"
)

// PredicateByName resolves a configured filter name. Empty means the default.
func PredicateByName(name string) (FailurePredicate, error) {
	switch name {
	case "", FilterFailingRows:
		return FailingRows, nil
	case FilterLegacy:
		return LegacyPassedNot100, nil
	default:
		return nil, fmt.Errorf("unknown failure filter %q", name)
	}
}

// FilterFailing keeps the checks matching pred, preserving order.
func FilterFailing(checks []models.Check, pred FailurePredicate) []models.Check {
	if pred == nil {
		pred = FailingRows
	}
	out := make([]models.Check, 0, len(checks))
	for _, c := range checks {
		if pred(c) {
			out = append(out, c)
		}
	}
	return out
}
