package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/argcoder/internal/model"
)

// Table is a parsed result artifact: a header plus one row per record.
// Rows keep whatever columns the file carried; the resume validator
// decides whether the schema is acceptable.
type Table struct {
	Columns []string
	Rows    []Row
}

// Row maps column name to cell value for one record.
type Row map[string]string

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Read parses a previously exported result CSV.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := &Table{Columns: header}

	for line := 2; ; line++ {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := make(Row, len(header))
		for i, name := range header {
			if i < len(cells) {
				row[name] = cells[i]
			} else {
				row[name] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// ParseRecord converts a table row into a CodingRecord. Missing optional
// columns read as absent fields. The score must be an integer in range;
// spreadsheet round-trips that turn 2 into 2.0 are tolerated.
func ParseRecord(row Row) (model.CodingRecord, error) {
	rec := model.CodingRecord{
		CodingID:              strings.TrimSpace(row["coding_id"]),
		CoderName:             strings.TrimSpace(row["coder_name"]),
		Variable:              model.Variable(strings.TrimSpace(row["variable"])),
		CitesData:             strings.EqualFold(strings.TrimSpace(row["cites_data"]), "Yes"),
		DataCategoryOther:     row["data_category_other"],
		InformationType:       model.InformationType(strings.TrimSpace(row["information_type"])),
		ArgumentCategory:      strings.TrimSpace(row["argument_category"]),
		ArgumentCategoryOther: row["argument_category_other"],
		Notes:                 row["notes"],
	}

	score, err := parseScore(row["score"])
	if err != nil {
		return model.CodingRecord{}, fmt.Errorf("record %s: %w", rec.CodingID, err)
	}
	rec.Score = score

	if cats := strings.TrimSpace(row["data_categories"]); cats != "" {
		rec.DataCategories = strings.Split(cats, categorySeparator)
	}

	if ts := strings.TrimSpace(row["coded_at"]); ts != "" {
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.CodedAt = parsed
		}
		// Unparseable timestamps are dropped rather than fatal; the
		// judgment matters, the save time does not.
	}

	return rec, nil
}

func parseScore(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty score")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("malformed score %q", s)
	}
	return int(f), nil
}
