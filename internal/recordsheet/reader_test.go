package recordsheet_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"dataquality/internal/domain"
	"dataquality/internal/recordsheet"
)

const sampleCSV = "\xEF\xBB\xBFConcession Name,Company Name,CVE Number,Region,Sentiment Score\n" +
	"North Ridge,Ridge Holdings,12345,NORTH,0.5\n" +
	",,,,\n" +
	"South Bay,Bay Mining,,SOUTH,-1\n" +
	"East Field,Field Co,INV,EAST,high\n"

func TestReadCSV(t *testing.T) {
	rows, err := recordsheet.ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	first := rows[0]
	assert.Equal(t, 2, first.Number)
	require.NoError(t, first.Err)
	assert.Equal(t, "North Ridge", first.Record.ConcessionName())
	assert.Equal(t, "Ridge Holdings", first.Record.CompanyName())
	cve, ok := first.Record.CVENumber()
	assert.True(t, ok)
	assert.Equal(t, "12345", cve)
	assert.Equal(t, "NORTH", first.Record.Region())
	assert.Equal(t, 0.5, first.Record.SentimentScore())

	// Line numbers keep counting across the skipped blank line.
	second := rows[1]
	assert.Equal(t, 4, second.Number)
	require.NoError(t, second.Err)
	_, ok = second.Record.CVENumber()
	assert.False(t, ok)

	third := rows[2]
	assert.Equal(t, 5, third.Number)
	assert.ErrorIs(t, third.Err, domain.ErrInvalidRecord)
	assert.Contains(t, third.Err.Error(), `"high"`)
}

func TestReadCSV_HeaderIsCaseInsensitiveAndReordered(t *testing.T) {
	in := "sentiment score, REGION ,cve number,company name,concession name,extra\n" +
		"1.5,WEST,54321,Acme,West Wind,ignored\n"

	rows, err := recordsheet.ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	rec := rows[0].Record
	assert.Equal(t, "West Wind", rec.ConcessionName())
	assert.Equal(t, "Acme", rec.CompanyName())
	assert.Equal(t, "WEST", rec.Region())
	assert.Equal(t, 1.5, rec.SentimentScore())
}

func TestReadCSV_ShortRowLeavesCellsEmpty(t *testing.T) {
	in := "Concession Name,Company Name,Region,Sentiment Score,CVE Number\n" +
		"Lone,Solo,NORTH,0\n"

	rows, err := recordsheet.ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.NoError(t, rows[0].Err)
	assert.True(t, rows[0].Record.HasBlankCVE())
}

func TestReadCSV_MissingColumns(t *testing.T) {
	_, err := recordsheet.ReadCSV(strings.NewReader("Concession Name,Company Name,Region\nA,B,C\n"))
	require.ErrorIs(t, err, recordsheet.ErrMissingColumn)
	assert.Contains(t, err.Error(), "CVE Number, Sentiment Score")
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := recordsheet.ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)

	_, err = recordsheet.ReadCSV(strings.NewReader("Concession Name,Company Name,CVE Number,Region,Sentiment Score\n,,,,\n"))
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)
}

func TestRead_DispatchesOnExtension(t *testing.T) {
	rows, err := recordsheet.Read("upload.CSV", strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = recordsheet.Read("upload.pdf", strings.NewReader(sampleCSV))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"Concession Name", "Company Name", "CVE Number", "Region", "Sentiment Score"},
		{"North Ridge", "Ridge Holdings", "12345", "NORTH", "0.5"},
		{"South Bay", "Bay Mining", "", "SOUTH", "-3"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	got, err := recordsheet.Read("batch.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 2, got[0].Number)
	assert.Equal(t, "North Ridge", got[0].Record.ConcessionName())
	assert.Equal(t, 3, got[1].Number)
	assert.Equal(t, -3.0, got[1].Record.SentimentScore())
	assert.True(t, got[1].Record.HasBlankCVE())
}

func TestReadXLSX_NotAWorkbook(t *testing.T) {
	_, err := recordsheet.ReadXLSX(strings.NewReader("not a zip"))
	assert.Error(t, err)
}
