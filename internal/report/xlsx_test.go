package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	records := sampleRecords()
	path := filepath.Join(t.TempDir(), "budget.xlsx")
	require.NoError(t, WriteXLSX(path, records, records))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{SheetPreVeto, SheetPostVeto}, f.GetSheetList())

	got, err := f.GetCellValue(SheetPreVeto, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Department Code", got)

	got, err = f.GetCellValue(SheetPostVeto, "J2")
	require.NoError(t, err)
	assert.Equal(t, "1500000", got)

	rows, err := f.GetRows(SheetPreVeto)
	require.NoError(t, err)
	assert.Len(t, rows, len(records)+1)
}
