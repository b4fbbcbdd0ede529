package dq

import "dq-report-service/internal/models"

// CheckLine is one failing check as shown in a report section.
type CheckLine struct {
	Assertion     string  `json:"assertion"`
	Label         string  `json:"label"`
	Column        string  `json:"column,omitempty"`
	Failed        int     `json:"failed"`
	Overall       int     `json:"overall"`
	PercentFailed float64 `json:"percent_failed"`
	Percent       string  `json:"percent"`
}

type Section struct {
	Key   models.CategoryKey `json:"key"`
	Title string             `json:"title"`
	Lines []CheckLine        `json:"lines"`
}

// Sections returns one section per category that has failing checks.
// Categories where everything passed are left out entirely.
func Sections(d *models.DataQualityCheck, pred FailurePredicate) []Section {
	if d == nil {
		return nil
	}
	var sections []Section
	for _, cat := range categoryTable {
		failing := FilterFailing(d.Category(cat.Key), pred)
		if len(failing) == 0 {
			continue
		}
		sec := Section{Key: cat.Key, Title: cat.Title, Lines: make([]CheckLine, 0, len(failing))}
		for _, c := range failing {
			sec.Lines = append(sec.Lines, lineFor(c))
		}
		sections = append(sections, sec)
	}
	return sections
}

func lineFor(c models.Check) CheckLine {
	// percent_failed arrives as 0..100 from the checker
	return CheckLine{
		Assertion:     c.Assertion,
		Label:         c.Label(),
		Column:        c.Column,
		Failed:        c.CountFailed,
		Overall:       c.CountOverall,
		PercentFailed: c.PercentFailed,
		Percent:       FormatPercent(c.PercentFailed / 100),
	}
}

// Titles lists section titles in order.
func Titles(sections []Section) []string {
	titles := make([]string, 0, len(sections))
	for _, s := range sections {
		titles = append(titles, s.Title)
	}
	return titles
}
