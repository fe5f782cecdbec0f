package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// Field kinds understood by the reader. Cells of a typed column that fail to
// coerce are reported on the row without dropping it.
const (
	KindString = "string"
	KindInt    = "int"
	KindFloat  = "float"
	KindBool   = "bool"
)

type Field struct {
	Name     string
	Kind     string
	Required bool
}

type FieldSchema []Field

// Row is one flat sheet record. Number is the 1-based data row index (the
// header row is not counted). Errs holds cell-level coercion failures found
// during parsing; required-field checks happen later in the reconciler.
type Row struct {
	Number int
	Values map[string]string
	Errs   []string
}

// Get returns the trimmed cell value for a column, or "" when absent.
func (r Row) Get(name string) string {
	return strings.TrimSpace(r.Values[name])
}

// Float parses a float column that the reader already type-checked.
func (r Row) Float(name string) float64 {
	v, _ := strconv.ParseFloat(r.Get(name), 64)
	return v
}

// Int parses an int column that the reader already type-checked.
func (r Row) Int(name string) int {
	v, _ := strconv.Atoi(r.Get(name))
	return v
}

// Parse reads a CSV sheet into ordered rows keyed by schema field names.
// Header cells are matched case-insensitively with spaces folded to
// underscores, so "Group Name" binds to the field "group_name". Unknown
// columns are ignored. Only a structurally unreadable file returns an error.
func Parse(data []byte, schema FieldSchema) ([]Row, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheet: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("sheet must have a header row and at least one data row")
	}

	byName := make(map[string]Field, len(schema))
	for _, f := range schema {
		byName[f.Name] = f
	}

	// column index -> schema field name
	columns := make(map[int]string)
	for i, cell := range records[0] {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(cell)), " ", "_")
		if _, ok := byName[key]; ok {
			columns[i] = key
		}
	}

	rows := make([]Row, 0, len(records)-1)
	for n, record := range records[1:] {
		row := Row{Number: n + 1, Values: make(map[string]string, len(columns))}
		for i, cell := range record {
			name, ok := columns[i]
			if !ok {
				continue
			}
			value := strings.TrimSpace(cell)
			row.Values[name] = value
			if value == "" {
				continue
			}
			if err := coerce(byName[name].Kind, value); err != nil {
				row.Errs = append(row.Errs, fmt.Sprintf("column %s: %v", name, err))
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func coerce(kind, value string) error {
	switch kind {
	case KindInt:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("%q is not an integer", value)
		}
	case KindFloat:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("%q is not a number", value)
		}
	case KindBool:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%q is not a boolean", value)
		}
	}
	return nil
}
