package export

// Format selects the wire shape for a leaderboard download.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Table is a rendered leaderboard: one header row plus one row per attendee,
// already stringified by the caller.
type Table struct {
	SheetName string
	Header    []string
	Rows      [][]string
}

func (f Format) Valid() bool {
	return f == FormatCSV || f == FormatXLSX
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

func (f Format) FileExtension() string {
	if f == FormatXLSX {
		return "xlsx"
	}
	return "csv"
}
