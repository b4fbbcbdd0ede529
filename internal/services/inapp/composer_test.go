package inapp

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dq-report-service/internal/models"
	"dq-report-service/internal/services/dq"
)

func domainReport(n int) dq.Report {
	checks := make([]models.Check, 0, n)
	for i := 0; i < n; i++ {
		checks = append(checks, models.Check{
			Assertion: fmt.Sprintf("is_in_domain_%02d", i), CountFailed: 1, CountPassed: 9, CountOverall: 10, PercentFailed: 10,
		})
	}
	d := &models.DataQualityCheck{
		Summary:      models.Summary{Rows: 10},
		DomainChecks: checks,
		RangeChecks:  []models.Check{{Assertion: "is_valid_range", CountPassed: 10, CountOverall: 10}},
	}
	return dq.BuildReport(models.UploadMeta{UploadID: "u-1"}, d, dq.FailingRows)
}

func TestAccordion_PaginatesRows(t *testing.T) {
	t.Parallel()

	acc := NewComposer().Accordion(domainReport(25), 3, 10)

	require.Len(t, acc.Items, 1)
	item := acc.Items[0]
	assert.Equal(t, "Domain Checks", item.Title)
	assert.Equal(t, 25, item.FailingCount)
	assert.Equal(t, 25, item.Table.Total)
	require.Len(t, item.Table.Rows, 5)
	assert.Equal(t, "is_in_domain_20", item.Table.Rows[0].Assertion)
}

func TestAccordion_When_PageOutOfRange(t *testing.T) {
	t.Parallel()

	acc := NewComposer().Accordion(domainReport(3), 9, 10)

	require.Len(t, acc.Items, 1)
	assert.Empty(t, acc.Items[0].Table.Rows)
	assert.NotNil(t, acc.Items[0].Table.Rows)
}

func TestAccordion_When_PageIsHuge(t *testing.T) {
	t.Parallel()

	acc := NewComposer().Accordion(domainReport(25), math.MaxInt64/100, MaxPageSize)

	require.Len(t, acc.Items, 1)
	assert.Empty(t, acc.Items[0].Table.Rows)
	assert.Equal(t, 25, acc.Items[0].Table.Total)
}

func TestAccordion_NormalizesPaging(t *testing.T) {
	t.Parallel()

	acc := NewComposer().Accordion(domainReport(3), 0, 1000)

	assert.Equal(t, 1, acc.Items[0].Table.Page)
	assert.Equal(t, MaxPageSize, acc.Items[0].Table.PageSize)

	acc = NewComposer().Accordion(domainReport(3), -1, 0)
	assert.Equal(t, DefaultPageSize, acc.Items[0].Table.PageSize)
}

func TestAccordion_TitlesMatchSections(t *testing.T) {
	t.Parallel()

	r := domainReport(2)
	acc := NewComposer().Accordion(r, 1, 10)

	titles := make([]string, 0, len(acc.Items))
	for _, it := range acc.Items {
		titles = append(titles, it.Title)
	}
	assert.Equal(t, dq.Titles(r.Sections), titles)
}

func TestDrillDown_DedupesAndSorts(t *testing.T) {
	t.Parallel()

	dd := NewComposer().DrillDown(domainReport(2), "is_in_domain_01", map[string][]string{
		"is_in_domain_01": {"school-9", "school-2", "", "school-9"},
		"is_in_domain_00": {"school-1"},
	})

	assert.Equal(t, "is_in_domain_01", dd.Title)
	assert.Equal(t, []string{"school-2", "school-9"}, dd.RowIDs)
	assert.Equal(t, 2, dd.Total)
}

func TestDrillDown_When_UnknownCheck(t *testing.T) {
	t.Parallel()

	dd := NewComposer().DrillDown(domainReport(1), "nope", nil)

	assert.Empty(t, dd.Title)
	assert.Equal(t, []string{}, dd.RowIDs)
	assert.Zero(t, dd.Total)
}
