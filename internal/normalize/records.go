package normalize

import (
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Common record locations, as JSONPath expressions.
const (
	PathRoot              = "$"
	PathData              = "$.data"
	PathHistorical        = "$.historical"
	PathAnnualReports     = "$.annualReports"
	PathQuarterlyReports  = "$.quarterlyReports"
	PathAnnualEarnings    = "$.annualEarnings"
	PathQuarterlyEarnings = "$.quarterlyEarnings"
)

// Labeled is a reported line item identified by its human-readable label.
type Labeled struct {
	Label string
	Value any
}

// Row is one provider record. Fields holds key/value pairs (provider field
// names or XBRL concepts); Labels holds reported line items in report order.
type Row struct {
	Fields map[string]any
	Labels []Labeled
}

// Lookup evaluates a JSONPath expression against a decoded payload. A
// single-element list result is unwrapped to its element. Missing paths
// yield nil.
func Lookup(payload any, path string) any {
	v, err := jsonpath.Get(path, payload)
	if err != nil {
		return nil
	}
	if list, ok := v.([]any); ok && len(list) == 1 && strings.ContainsAny(path, "[*") {
		return list[0]
	}
	return v
}

// Number returns the first path that resolves to a numeric value.
func Number(payload any, paths ...string) *float64 {
	for _, p := range paths {
		if f := Float(Lookup(payload, p)); f != nil {
			return f
		}
	}
	return nil
}

// Text returns the first path that resolves to a non-empty string.
func Text(payload any, paths ...string) string {
	for _, p := range paths {
		if s, ok := Lookup(payload, p).(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// Records locates the record list of a payload. Paths are tried in order;
// the first one resolving to at least one object wins. A path resolving
// to a single object yields a one-row result.
func Records(payload any, paths ...string) []Row {
	if len(paths) == 0 {
		paths = []string{PathRoot}
	}
	for _, p := range paths {
		v, err := jsonpath.Get(p, payload)
		if err != nil {
			continue
		}
		if rows := toRows(v); len(rows) > 0 {
			return rows
		}
	}
	return nil
}

func toRows(v any) []Row {
	switch t := v.(type) {
	case []any:
		rows := make([]Row, 0, len(t))
		for _, item := range t {
			if m, ok := item.(map[string]any); ok && len(m) > 0 {
				rows = append(rows, Row{Fields: m})
			}
		}
		return rows
	case map[string]any:
		if len(t) == 0 {
			return nil
		}
		return []Row{{Fields: t}}
	default:
		return nil
	}
}

// ReportedRows flattens a reported-financials payload (Finnhub
// /stock/financials-reported) into rows.
//
// Each entry of $.data carries scalar metadata (endDate, year, quarter) and a
// "report" object whose sections (ic, bs, cf) are lists of
// {concept, label, value}. Concepts become fields and labels are kept in
// report order; within a row the first occurrence of a concept wins.
func ReportedRows(payload any) []Row {
	entries := Records(payload, PathData)
	out := make([]Row, 0, len(entries))
	for _, e := range entries {
		row := Row{Fields: make(map[string]any, 64)}
		for k, v := range e.Fields {
			if k == "report" {
				continue
			}
			row.Fields[k] = v
		}

		report, _ := e.Fields["report"].(map[string]any)
		for _, section := range []string{"ic", "bs", "cf"} {
			switch items := report[section].(type) {
			case []any:
				for _, it := range items {
					item, ok := it.(map[string]any)
					if !ok {
						continue
					}
					value := item["value"]
					if concept, ok := item["concept"].(string); ok && concept != "" {
						if _, seen := row.Fields[concept]; !seen {
							row.Fields[concept] = value
						}
					}
					if label, ok := item["label"].(string); ok && label != "" {
						row.Labels = append(row.Labels, Labeled{Label: label, Value: value})
					}
				}
			case map[string]any:
				for concept, value := range items {
					if _, seen := row.Fields[concept]; !seen {
						row.Fields[concept] = value
					}
				}
			}
		}
		out = append(out, row)
	}
	return out
}
