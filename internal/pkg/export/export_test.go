package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var sample = Table{
	Title:   "Students",
	Headers: []string{"Student ID", "Name", "CGPA"},
	Rows: [][]string{
		{"21CE001", "Asha Patel", "8.50"},
		{"21CE002", "Ravi, Kumar", "7.25"},
	},
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("docx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatMetadata(t *testing.T) {
	assert.Equal(t, "students.pdf", FormatPDF.Filename("students"))
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Contains(t, FormatCSV.ContentType(), "text/csv")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sample))
	assert.Equal(t, "Student ID,Name,CGPA\n21CE001,Asha Patel,8.50\n21CE002,\"Ravi, Kumar\",7.25\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sample))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Students")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, sample.Headers, rows[0])
	assert.Equal(t, "Ravi, Kumar", rows[2][1])
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatPDF, sample))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWrite_Unsupported(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Write(&buf, Format("doc"), sample), ErrUnsupportedFormat)
}

func TestSheetTitle(t *testing.T) {
	assert.Equal(t, "Batch 2025-26", sheetTitle("Batch 2025/26"))
	assert.Len(t, sheetTitle("a very long sheet title that keeps going"), 31)
}
