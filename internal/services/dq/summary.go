package dq

import (
	"fmt"

	"dq-report-service/internal/models"
)

type BannerStatus string

const (
	BannerSuccess BannerStatus = "success"
	BannerError   BannerStatus = "error"
)

// FileSummary holds the file-level numbers shown at the top of every report.
type FileSummary struct {
	Rows                  int          `json:"rows"`
	Columns               int          `json:"columns"`
	Timestamp             string       `json:"timestamp"`
	RowsPassed            int          `json:"rows_passed"`
	RowsFailed            int          `json:"rows_failed"`
	PassRate              float64      `json:"pass_rate"`
	CriticalPercentFailed float64      `json:"critical_percent_failed"`
	Status                BannerStatus `json:"status"`
}

// Summarize derives file-level totals. Only the first critical error check
// decides whether a row was dropped; every other category is advisory.
// Missing data never errors, it counts as zero.
func Summarize(d *models.DataQualityCheck) FileSummary {
	if d == nil {
		return FileSummary{Status: BannerSuccess}
	}

	s := FileSummary{
		Rows:      d.Summary.Rows,
		Columns:   d.Summary.Columns,
		Timestamp: d.Summary.Timestamp,
		Status:    BannerSuccess,
	}

	if len(d.CriticalErrorCheck) > 0 {
		critical := d.CriticalErrorCheck[0]
		s.RowsFailed = critical.CountFailed
		s.CriticalPercentFailed = critical.PercentFailed
		if critical.PercentFailed > 0 {
			s.Status = BannerError
		}
	}
	s.RowsPassed = s.Rows - s.RowsFailed

	if s.Rows > 0 {
		s.PassRate = float64(s.RowsPassed) / float64(s.Rows)
	}
	return s
}

// FormatPercent renders a 0..1 ratio as "12.34%".
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*100)
}
