package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteHeader(t *testing.T) {
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })
	sheet := f.GetSheetName(0)

	require.NoError(t, writeHeader(f, sheet))
	got, err := f.GetCellValue(sheet, "J1")
	require.NoError(t, err)
	assert.Equal(t, "Created", got)
}

func TestWriteHeader_MissingSheet(t *testing.T) {
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	err := writeHeader(f, "NoSuchSheet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write header")
}
