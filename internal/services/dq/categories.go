package dq

import "dq-report-service/internal/models"

// Category is one row of the canonical category table shared by every report surface.
type Category struct {
	Key   models.CategoryKey
	Title string
}

var categoryTable = []Category{
	{Key: models.CriticalErrorCheck, Title: "Critical Error Checks"},
	{Key: models.CompletenessChecks, Title: "Completeness Checks"},
	{Key: models.DomainChecks, Title: "Domain Checks"},
	{Key: models.DuplicateRowsChecks, Title: "Duplicate Rows Checks"},
	{Key: models.FormatValidationChecks, Title: "Format Validation Checks"},
	{Key: models.GeospatialChecks, Title: "Geospatial Checks"},
	{Key: models.RangeChecks, Title: "Range Checks"},
}

type CategoryTotals struct {
	Key         models.CategoryKey `json:"key"`
	Title       string             `json:"title"`
	Checks      int                `json:"checks"`
	Failing     int                `json:"failing"`
	Passing     int                `json:"passing"`
	RowsFailed  int                `json:"rows_failed"`
	RowsOverall int                `json:"rows_overall"`
}

// Aggregate computes pass/fail totals for every category, including empty ones.
func Aggregate(d *models.DataQualityCheck, pred FailurePredicate) []CategoryTotals {
	if pred == nil {
		pred = FailingRows
	}
	totals := make([]CategoryTotals, 0, len(categoryTable))
	for _, cat := range categoryTable {
		t := CategoryTotals{Key: cat.Key, Title: cat.Title}
		if d != nil {
			for _, c := range d.Category(cat.Key) {
				t.Checks++
				if pred(c) {
					t.Failing++
				} else {
					t.Passing++
				}
				t.RowsFailed += c.CountFailed
				t.RowsOverall += c.CountOverall
			}
		}
		totals = append(totals, t)
	}
	return totals
}
