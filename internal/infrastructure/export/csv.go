package export

import (
	"encoding/csv"
	"fmt"

	"github.com/valyala/bytebufferpool"
)

// RenderCSV writes the table as RFC 4180 CSV. The scratch buffer comes from
// a pool because operators tend to pull exports for every event in a burst
// after the final whistle.
func RenderCSV(table Table) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w := csv.NewWriter(buf)
	if err := w.Write(table.Header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}
