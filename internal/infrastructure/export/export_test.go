package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() Table {
	return Table{
		SheetName: "Leaderboard",
		Header:    []string{"Name", "Email", "Accuracy (%)", "Total Points"},
		Rows: [][]string{
			{"Ayu Lestari", "ayu@example.com", "66.67", "4"},
			{"Budi Santoso", "budi@example.com", "33.33", "2"},
		},
	}
}

func TestRenderCSV(t *testing.T) {
	data, err := RenderCSV(sampleTable())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, []string{"Name", "Email", "Accuracy (%)", "Total Points"}, records[0])
	require.Equal(t, "ayu@example.com", records[1][1])
}

func TestRenderCSV_QuotesEmbeddedCommas(t *testing.T) {
	table := Table{
		Header: []string{"Name", "Prediction"},
		Rows:   [][]string{{"O'Brien, Sean", "2-1 (prediction) / 3-0 (final)"}},
	}

	data, err := RenderCSV(table)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Equal(t, "O'Brien, Sean", records[1][0])
}

func TestRenderXLSX(t *testing.T) {
	data, err := RenderXLSX(sampleTable())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Equal(t, []string{"Leaderboard"}, sheets)

	rows, err := f.GetRows("Leaderboard")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Ayu Lestari", rows[1][0])
	require.Equal(t, "2", rows[2][3])
}
