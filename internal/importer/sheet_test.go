package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRowDate(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"2024-01-05", "2024-01-05"},
		{"2023/7/1", "2023-07-01"},
		{"2023.7.1", "2023-07-01"},
		{"2024-01-05 00:00:00", "2024-01-05"},
		{"7/1/23", "2023-07-01"},
		{"45292", "2024-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := Row{"d": tt.value}.Date("d")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}

	got, err := Row{"d": "  "}.Date("d")
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = Row{"d": "soon"}.Date("d")
	assert.Error(t, err)
}

func TestRowAccessors(t *testing.T) {
	row := Row{"name": "  张三 ", "email": ""}

	assert.Equal(t, "张三", row.Get("name"))
	assert.Equal(t, "", row.Get("missing"))
	assert.Nil(t, row.Ptr("email"))
	require.NotNil(t, row.Ptr("name"))
	assert.Equal(t, "张三", *row.Ptr("name"))
}

func TestReadSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"name", " phone ", ""}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"A", "1", "ignored"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"B"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := ReadSheet(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "A", rows[0].Get("name"))
	assert.Equal(t, "1", rows[0].Get("phone"))
	assert.Len(t, rows[0], 2)
	assert.Equal(t, "B", rows[1].Get("name"))
	assert.Equal(t, "", rows[1].Get("phone"))
}

func TestReadSheet_NotAWorkbook(t *testing.T) {
	_, err := ReadSheet(bytes.NewReader([]byte("name,phone\n")))
	assert.Error(t, err)
}
