// Package dataset loads a wide CSV indicator export and flattens it into the
// long form served over the API: one record per country, indicator and year.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// fixedColumns precede the year columns in the header row.
const fixedColumns = 4

// headerColumn marks the real header row inside the export's banner.
const headerColumn = "Country Name"

// Record is one flattened cell. Field names keep the source export's column
// labels because the web client consumes them verbatim. A nil Value encodes
// a missing cell as JSON null.
type Record struct {
	CountryName   string   `json:"Country Name"`
	CountryCode   string   `json:"Country Code"`
	IndicatorName string   `json:"Indicator Name"`
	IndicatorCode string   `json:"Indicator Code"`
	Year          string   `json:"Year"`
	Value         *float64 `json:"Value"`
}

// LoadFile reads and flattens the CSV export at path.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a wide CSV export from r and returns the flattened records.
// The reader must be positioned at the start of the file, banner included.
// Banner rows before the "Country Name" header are skipped.
func Load(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	if len(header) <= fixedColumns {
		return nil, fmt.Errorf("dataset header too short: %d columns", len(header))
	}
	years := header[fixedColumns:]

	var out []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row: %w", err)
		}
		if len(row) < fixedColumns {
			continue
		}
		for i, year := range years {
			rec := Record{
				CountryName:   row[0],
				CountryCode:   row[1],
				IndicatorName: row[2],
				IndicatorCode: row[3],
				Year:          year,
			}
			col := fixedColumns + i
			if col < len(row) {
				if v, err := strconv.ParseFloat(row[col], 64); err == nil {
					rec.Value = &v
				}
			}
			out = append(out, rec)
		}
	}
	return out, nil
}

func readHeader(cr *csv.Reader) ([]string, error) {
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil, fmt.Errorf("dataset header row %q not found", headerColumn)
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset banner: %w", err)
		}
		if len(row) > 0 && row[0] == headerColumn {
			return row, nil
		}
	}
}
