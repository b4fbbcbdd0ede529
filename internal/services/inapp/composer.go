package inapp

import (
	"sort"

	"dq-report-service/internal/models"
	"dq-report-service/internal/services/dq"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Table struct {
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Total    int            `json:"total"`
	Rows     []dq.CheckLine `json:"rows"`
}

type AccordionItem struct {
	Key          models.CategoryKey `json:"key"`
	Title        string             `json:"title"`
	FailingCount int                `json:"failing_count"`
	Table        Table              `json:"table"`
}

type Accordion struct {
	Summary dq.FileSummary  `json:"summary"`
	Items   []AccordionItem `json:"items"`
}

// DrillDown is the failing-row detail for one check.
type DrillDown struct {
	Check  string   `json:"check"`
	Title  string   `json:"title,omitempty"`
	Column string   `json:"column,omitempty"`
	RowIDs []string `json:"row_ids"`
	Total  int      `json:"total"`
}

type Composer struct{}

func NewComposer() *Composer {
	return &Composer{}
}

// Accordion pages every section's rows with the same page and size.
// Out-of-range pages yield empty row lists rather than errors.
func (c *Composer) Accordion(report dq.Report, page, pageSize int) Accordion {
	page, pageSize = normalize(page, pageSize)

	items := make([]AccordionItem, 0, len(report.Sections))
	for _, sec := range report.Sections {
		items = append(items, AccordionItem{
			Key:          sec.Key,
			Title:        sec.Title,
			FailingCount: len(sec.Lines),
			Table:        paginate(sec.Lines, page, pageSize),
		})
	}
	return Accordion{Summary: report.Summary, Items: items}
}

// DrillDown returns the identifiers of the rows that failed assertion, as
// reported by the backend in failedRows (keyed by assertion). IDs are
// de-duplicated and sorted for a stable modal listing.
func (c *Composer) DrillDown(report dq.Report, assertion string, failedRows map[string][]string) DrillDown {
	out := DrillDown{Check: assertion, RowIDs: []string{}}
	for _, sec := range report.Sections {
		for _, l := range sec.Lines {
			if l.Assertion == assertion {
				out.Title = l.Label
				out.Column = l.Column
			}
		}
	}

	seen := make(map[string]struct{})
	for _, id := range failedRows[assertion] {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out.RowIDs = append(out.RowIDs, id)
	}
	sort.Strings(out.RowIDs)
	out.Total = len(out.RowIDs)
	return out
}

func normalize(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func paginate(lines []dq.CheckLine, page, pageSize int) Table {
	t := Table{Page: page, PageSize: pageSize, Total: len(lines), Rows: []dq.CheckLine{}}
	pages := (len(lines) + pageSize - 1) / pageSize
	if page-1 >= pages {
		return t
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(lines) {
		end = len(lines)
	}
	t.Rows = lines[start:end]
	return t
}
