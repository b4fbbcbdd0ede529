package dq

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dq-report-service/internal/models"
)

func check(assertion string, failed, overall int) models.Check {
	c := models.Check{
		Assertion:    assertion,
		Description:  assertion + " description",
		CountFailed:  failed,
		CountPassed:  overall - failed,
		CountOverall: overall,
	}
	if overall > 0 {
		c.PercentFailed = float64(failed) / float64(overall) * 100
		c.PercentPassed = 100 - c.PercentFailed
	}
	return c
}

func TestFailingRows_TreatsZeroFailuresAsPassing_When_OverallIsNot100(t *testing.T) {
	t.Parallel()

	c := check("is_not_null", 0, 50)

	assert.False(t, FailingRows(c))
	assert.True(t, LegacyPassedNot100(c), "legacy predicate misclassifies a fully passing 50-row check")
}

func TestFailingRows_FlagsAnyFailure(t *testing.T) {
	t.Parallel()

	assert.True(t, FailingRows(check("is_unique", 1, 100)))
	assert.False(t, FailingRows(check("is_unique", 0, 100)))
}

func TestPredicateByName(t *testing.T) {
	t.Parallel()

	pred, err := PredicateByName("")
	require.NoError(t, err)
	assert.False(t, pred(check("x", 0, 50)))

	pred, err = PredicateByName(FilterLegacy)
	require.NoError(t, err)
	assert.True(t, pred(check("x", 0, 50)))

	_, err = PredicateByName("strict")
	assert.Error(t, err)
}

func TestFilterFailing_PreservesOrder(t *testing.T) {
	t.Parallel()

	in := []models.Check{
		check("a", 3, 10),
		check("b", 0, 10),
		check("c", 1, 10),
	}

	out := FilterFailing(in, FailingRows)

	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Assertion)
	assert.Equal(t, "c", out[1].Assertion)
	assert.Len(t, in, 3, "input must not be modified")
}

func TestFilterFailing_When_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, FilterFailing(nil, FailingRows))
	assert.Empty(t, FilterFailing([]models.Check{}, nil))
}

func TestSummarize_When_CriticalCategoryEmpty(t *testing.T) {
	t.Parallel()

	d := &models.DataQualityCheck{
		Summary:            models.Summary{Rows: 100},
		CriticalErrorCheck: []models.Check{},
	}

	s := Summarize(d)

	assert.Equal(t, 100, s.RowsPassed)
	assert.Equal(t, 0, s.RowsFailed)
	assert.Equal(t, BannerSuccess, s.Status)
	assert.InDelta(t, 1.0, s.PassRate, 1e-9)
}

func TestSummarize_EndToEnd(t *testing.T) {
	t.Parallel()

	d := &models.DataQualityCheck{
		Summary:            models.Summary{Rows: 200, Columns: 12, Timestamp: "2024-05-01T10:00:00Z"},
		CriticalErrorCheck: []models.Check{check("is_critical", 5, 200)},
	}

	s := Summarize(d)

	assert.Equal(t, 5, s.RowsFailed)
	assert.Equal(t, 195, s.RowsPassed)
	assert.Equal(t, 12, s.Columns)
	assert.Equal(t, BannerError, s.Status)
	assert.Equal(t, "97.50%", FormatPercent(s.PassRate))
}

func TestSummarize_IsIdempotent(t *testing.T) {
	t.Parallel()

	d := &models.DataQualityCheck{
		Summary:            models.Summary{Rows: 40},
		CriticalErrorCheck: []models.Check{check("is_critical", 7, 40)},
	}

	first := Summarize(d)
	second := Summarize(d)

	assert.Equal(t, first, second)
}

func TestSummarize_When_Nil(t *testing.T) {
	t.Parallel()

	s := Summarize(nil)

	assert.Zero(t, s.Rows)
	assert.Zero(t, s.PassRate)
	assert.Equal(t, BannerSuccess, s.Status)
}

func TestFormatPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "12.34%", FormatPercent(0.1234))
	assert.Equal(t, "0.00%", FormatPercent(0))
	assert.Equal(t, "100.00%", FormatPercent(1))
}

func TestSections_SuppressesPassingCategories(t *testing.T) {
	t.Parallel()

	d := &models.DataQualityCheck{
		CompletenessChecks: []models.Check{check("is_not_null_school_id", 0, 10), check("is_not_null_name", 0, 10)},
		GeospatialChecks:   []models.Check{check("is_within_country", 2, 10), check("is_valid_latitude", 0, 10)},
	}

	sections := Sections(d, FailingRows)

	require.Len(t, sections, 1)
	assert.Equal(t, models.GeospatialChecks, sections[0].Key)
	assert.Equal(t, "Geospatial Checks", sections[0].Title)
	require.Len(t, sections[0].Lines, 1)
	assert.Equal(t, "is_within_country", sections[0].Lines[0].Assertion)
	assert.Equal(t, "20.00%", sections[0].Lines[0].Percent)
}

func TestSections_FollowCanonicalOrder(t *testing.T) {
	t.Parallel()

	d := &models.DataQualityCheck{
		RangeChecks:        []models.Check{check("is_in_range", 1, 10)},
		CriticalErrorCheck: []models.Check{check("is_critical", 1, 10)},
		DomainChecks:       []models.Check{check("is_in_domain", 1, 10)},
	}

	titles := Titles(Sections(d, FailingRows))

	assert.Equal(t, []string{"Critical Error Checks", "Domain Checks", "Range Checks"}, titles)
}

func TestSections_UsesAssertion_When_DescriptionMissing(t *testing.T) {
	t.Parallel()

	c := check("has_duplicates", 4, 8)
	c.Description = ""
	c.Column = "school_id_giga"
	d := &models.DataQualityCheck{DuplicateRowsChecks: []models.Check{c}}

	sections := Sections(d, FailingRows)

	require.Len(t, sections, 1)
	assert.Equal(t, "has_duplicates", sections[0].Lines[0].Label)
	assert.Equal(t, "school_id_giga", sections[0].Lines[0].Column)
}

func TestAggregate_CountsEveryCategory(t *testing.T) {
	t.Parallel()

	d := &models.DataQualityCheck{
		DomainChecks: []models.Check{check("a", 1, 10), check("b", 0, 10)},
	}

	totals := Aggregate(d, FailingRows)

	require.Len(t, totals, len(models.CategoryKeys))
	for _, tot := range totals {
		if tot.Key == models.DomainChecks {
			assert.Equal(t, 2, tot.Checks)
			assert.Equal(t, 1, tot.Failing)
			assert.Equal(t, 1, tot.Passing)
			assert.Equal(t, 1, tot.RowsFailed)
			assert.Equal(t, 20, tot.RowsOverall)
			continue
		}
		assert.Zero(t, tot.Checks, tot.Key)
	}
}

func TestBuildReport_FromUpstreamJSON(t *testing.T) {
	t.Parallel()

	payload := `{
		"summary": {"rows": 200, "columns": 9, "timestamp": "2024-05-01T10:00:00Z"},
		"critical_error_check": [{"assertion": "is_critical", "column": null, "description": "Rows with critical errors",
			"count_failed": 5, "count_passed": 195, "count_overall": 200, "percent_failed": 2.5, "percent_passed": 97.5}],
		"domain_checks": "not-an-array",
		"range_checks": [{"assertion": "is_valid_range", "column": "latitude", "description": "Latitude in range",
			"count_failed": 0, "count_passed": 200, "count_overall": 200, "percent_failed": 0, "percent_passed": 100}]
	}`

	var d models.DataQualityCheck
	require.NoError(t, json.Unmarshal([]byte(payload), &d))

	r := BuildReport(models.UploadMeta{UploadID: "u-1", Dataset: "geolocation"}, &d, FailingRows)

	assert.Empty(t, d.DomainChecks, "malformed category degrades to empty")
	assert.Equal(t, 195, r.Summary.RowsPassed)
	assert.Equal(t, []string{"Critical Error Checks"}, Titles(r.Sections))
	assert.Equal(t, 1, r.FailingChecks())
	assert.True(t, r.HasChecks())
}

func TestCheck_Consistent(t *testing.T) {
	t.Parallel()

	assert.True(t, check("a", 2, 10).Consistent())
	assert.False(t, models.Check{CountFailed: 1, CountPassed: 1, CountOverall: 3}.Consistent())
}
