// Package export renders a session's record set to a flat CSV artifact
// and reads such artifacts back for resume. Exporting then resuming the
// same file against the same item store reproduces the session, modulo
// timestamps.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/argcoder/internal/model"
)

// Columns is the exported column set, one per CodingRecord field. Absent
// optional fields serialize as empty strings, never as missing columns.
var Columns = []string{
	"coding_id",
	"coder_name",
	"variable",
	"score",
	"cites_data",
	"data_categories",
	"data_category_other",
	"information_type",
	"argument_category",
	"argument_category_other",
	"notes",
	"coded_at",
}

// categorySeparator joins multi-select data categories in a single cell.
const categorySeparator = "; "

// Write renders records as CSV in the order given. Callers pass
// Session.Records() so row order follows the item store.
func Write(w io.Writer, records []model.CodingRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.CodingID,
			rec.CoderName,
			string(rec.Variable),
			strconv.Itoa(rec.Score),
			yesNo(rec.CitesData),
			strings.Join(rec.DataCategories, categorySeparator),
			rec.DataCategoryOther,
			string(rec.InformationType),
			rec.ArgumentCategory,
			rec.ArgumentCategoryOther,
			rec.Notes,
			formatTime(rec.CodedAt),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %s: %w", rec.CodingID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Filename builds the conventional export name:
// coded_<coder>_<variable>_<YYYYMMDD_HHMMSS>.csv with the coder name
// lowercased and spaces replaced by underscores.
func Filename(coder string, variable model.Variable, now time.Time) string {
	safe := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(coder)), " ", "_")
	return fmt.Sprintf("coded_%s_%s_%s.csv", safe, strings.ToLower(string(variable)), now.Format("20060102_150405"))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
