package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/SStyles93/csvxl/pkg/csvxl/model"
)

// ReadCSV reads a CSV file into a table with the given name. The first
// record is the header; every following record becomes one typed row.
// Records must all have the header's field count.
func ReadCSV(path, name string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := readCSV(f, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func readCSV(r io.Reader, name string) (*model.Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty csv file")
	}
	if err != nil {
		return nil, err
	}
	// Excel exports open with a byte order mark
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	columns := normalizeColumns(header, len(header))

	t := model.NewTable(name, columns)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(model.Row, len(columns))
		for i, col := range columns {
			row[col] = ParseValue(record[i])
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
