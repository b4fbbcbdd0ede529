package models

import (
	"encoding/json"
	"log"
)

type Summary struct {
	Rows       int    `json:"rows"`
	Columns    int    `json:"columns"`
	Timestamp  string `json:"timestamp"`
	RowsPassed *int   `json:"rows_passed,omitempty"`
	RowsFailed *int   `json:"rows_failed,omitempty"`
}

// DataQualityCheck is the full result set for one upload.
type DataQualityCheck struct {
	CriticalErrorCheck     []Check `json:"critical_error_check"`
	CompletenessChecks     []Check `json:"completeness_checks"`
	DomainChecks           []Check `json:"domain_checks"`
	DuplicateRowsChecks    []Check `json:"duplicate_rows_checks"`
	FormatValidationChecks []Check `json:"format_validation_checks"`
	GeospatialChecks       []Check `json:"geospatial_checks"`
	RangeChecks            []Check `json:"range_checks"`
	Summary                Summary `json:"summary"`
}

// Category returns the checks stored under key, or nil for an unknown key.
func (d *DataQualityCheck) Category(key CategoryKey) []Check {
	if p := d.slot(key); p != nil {
		return *p
	}
	return nil
}

func (d *DataQualityCheck) slot(key CategoryKey) *[]Check {
	switch key {
	case CriticalErrorCheck:
		return &d.CriticalErrorCheck
	case CompletenessChecks:
		return &d.CompletenessChecks
	case DomainChecks:
		return &d.DomainChecks
	case DuplicateRowsChecks:
		return &d.DuplicateRowsChecks
	case FormatValidationChecks:
		return &d.FormatValidationChecks
	case GeospatialChecks:
		return &d.GeospatialChecks
	case RangeChecks:
		return &d.RangeChecks
	}
	return nil
}

// UnmarshalJSON accepts partial payloads: a missing or malformed category
// decodes as empty instead of failing the whole document.
func (d *DataQualityCheck) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*d = DataQualityCheck{}
	for _, key := range CategoryKeys {
		msg, ok := raw[string(key)]
		if !ok {
			continue
		}
		var checks []Check
		if err := json.Unmarshal(msg, &checks); err != nil {
			log.Printf("dq payload: ignoring malformed category %s: %v", key, err)
			continue
		}
		*d.slot(key) = checks
	}

	if msg, ok := raw["summary"]; ok {
		if err := json.Unmarshal(msg, &d.Summary); err != nil {
			log.Printf("dq payload: ignoring malformed summary: %v", err)
			d.Summary = Summary{}
		}
	}
	return nil
}
