package statement

import (
	"encoding/csv"
	"fmt"
	"io"
)

func WriteCSV(w io.Writer, st Statement) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("WriteCSV: header: %w", err)
	}
	for _, r := range st.Rows {
		if err := writer.Write(record(r)); err != nil {
			return fmt.Errorf("WriteCSV: row %s: %w", r.SourceID, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}
	return nil
}
