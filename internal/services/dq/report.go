package dq

import "dq-report-service/internal/models"

// Report is the single view model every composer renders from.
type Report struct {
	Meta     models.UploadMeta `json:"meta"`
	Summary  FileSummary       `json:"summary"`
	Totals   []CategoryTotals  `json:"totals"`
	Sections []Section         `json:"sections"`
}

// HasChecks reports whether the report was built from an actual DQ result.
func (r Report) HasChecks() bool {
	return r.Summary.Rows > 0 || len(r.Sections) > 0
}

// FailingChecks counts the check lines across all sections.
func (r Report) FailingChecks() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Lines)
	}
	return n
}

func BuildReport(meta models.UploadMeta, d *models.DataQualityCheck, pred FailurePredicate) Report {
	return Report{
		Meta:     meta,
		Summary:  Summarize(d),
		Totals:   Aggregate(d, pred),
		Sections: Sections(d, pred),
	}
}
