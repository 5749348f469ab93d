package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrNoData is returned when a CSV source yields no usable rows.
var ErrNoData = errors.New("no valid data found in CSV")

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn  string   // Column name for dates (optional)
	ValueColumn string   // Column name for values (default: "y")
	ExogColumns []string // Columns loaded as exogenous regressors (optional)
	IDColumn    string   // Column name for series ID (optional, for filtering)
	IDFilter    string   // Value to filter by ID column
	DateFormat  string   // Date format (default: "2006-01-02")
	HasHeader   bool     // Whether CSV has header row (default: true)
	Delimiter   rune     // Field delimiter (default: ',')
	SkipRows    int      // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		ValueColumn: "y",
		DateFormat:  "2006-01-02",
		HasHeader:   true,
		Delimiter:   ',',
	}
}

// LoadCSV loads a time series and its exogenous columns from a CSV file.
// The returned matrix has one row per observation and is nil when
// opts.ExogColumns is empty.
func LoadCSV(filename string, opts *CSVOptions) (*Series, [][]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFiltered loads the rows whose idColumn equals idValue.
func LoadCSVFiltered(filename string, idColumn, idValue, valueColumn string) (*Series, error) {
	opts := DefaultCSVOptions()
	opts.IDColumn = idColumn
	opts.IDFilter = idValue
	if valueColumn != "" {
		opts.ValueColumn = valueColumn
	}
	series, _, err := LoadCSV(filename, opts)
	return series, err
}

type columnIndex struct {
	value, date, id int
	exog            []int
}

// LoadCSVFromReader loads a time series and its exogenous columns from an io.Reader.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, [][]float64, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, nil, err
		}
	}

	idx, err := resolveColumns(reader, opts)
	if err != nil {
		return nil, nil, err
	}

	var (
		values     []float64
		timestamps []time.Time
		exog       [][]float64
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		if opts.IDFilter != "" && idx.id >= 0 && idx.id < len(record) {
			if field(record, idx.id) != opts.IDFilter {
				continue
			}
		}

		val, ok := parseNumber(record, idx.value)
		if !ok {
			continue
		}

		var row []float64
		if len(idx.exog) > 0 {
			row = make([]float64, len(idx.exog))
			complete := true
			for j, c := range idx.exog {
				if row[j], ok = parseNumber(record, c); !ok {
					complete = false
					break
				}
			}
			if !complete {
				continue
			}
			exog = append(exog, row)
		}

		values = append(values, val)

		if idx.date >= 0 && idx.date < len(record) {
			if ts, ok := parseDate(field(record, idx.date), opts.DateFormat); ok {
				timestamps = append(timestamps, ts)
			}
		}
	}

	if len(values) == 0 {
		return nil, nil, ErrNoData
	}

	if len(timestamps) == len(values) {
		return &Series{Timestamps: timestamps, Values: values, Name: opts.ValueColumn}, exog, nil
	}

	s := New(values)
	s.Name = opts.ValueColumn
	return s, exog, nil
}

func resolveColumns(reader *csv.Reader, opts *CSVOptions) (columnIndex, error) {
	idx := columnIndex{value: -1, date: -1, id: -1}

	if !opts.HasHeader {
		if len(opts.ExogColumns) > 0 {
			return idx, errors.New("exogenous columns require a header row")
		}
		idx.date = 0
		idx.value = 1
		return idx, nil
	}

	headers, err := reader.Read()
	if err != nil {
		return idx, err
	}

	position := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(strings.Trim(h, "\""))
		position[h] = i

		switch {
		case h == opts.ValueColumn || (opts.ValueColumn == "" && (h == "y" || h == "value" || h == "Value")):
			idx.value = i
		case opts.DateColumn != "" && h == opts.DateColumn:
			idx.date = i
		case h == "ds" || h == "date" || h == "Date":
			if idx.date == -1 {
				idx.date = i
			}
		case opts.IDColumn != "" && h == opts.IDColumn:
			idx.id = i
		case h == "unique_id" || h == "id" || h == "ID":
			if idx.id == -1 && opts.IDColumn == "" {
				idx.id = i
			}
		}
	}

	if idx.value == -1 {
		idx.value = len(headers) - 1
	}

	for _, name := range opts.ExogColumns {
		i, ok := position[name]
		if !ok {
			return idx, fmt.Errorf("exogenous column %q not found", name)
		}
		idx.exog = append(idx.exog, i)
	}

	return idx, nil
}

func field(record []string, i int) string {
	return strings.TrimSpace(strings.Trim(record[i], "\""))
}

func parseNumber(record []string, i int) (float64, bool) {
	if i < 0 || i >= len(record) {
		return 0, false
	}
	s := field(record, i)
	switch s {
	case "", "NA", "NaN", "null":
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseDate(s, preferred string) (time.Time, bool) {
	formats := []string{
		preferred,
		"2006-01-02",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006/01/02",
		"01/02/2006",
		"2006",
	}
	for _, f := range formats {
		if f == "" {
			continue
		}
		if ts, err := time.Parse(f, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
