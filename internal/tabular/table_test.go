package tabular

import (
	"errors"
	"testing"
	"time"

	"github.com/rpattn/leadrecon/internal/tabular/tabulartest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSVStripsBOMAndPadsRows(t *testing.T) {
	payload := append([]byte{0xEF, 0xBB, 0xBF}, []byte("\n Email , Phone,Zip\na@x.com,555\n\n,,\nb@x.com,556,90210,extra\n")...)

	table, err := Read("leads.csv", payload)
	require.NoError(t, err)

	assert.Equal(t, []string{"Email", "Phone", "Zip"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"a@x.com", "555", ""}, table.Rows[0])
	assert.Equal(t, []string{"b@x.com", "556", "90210"}, table.Rows[1])
	assert.Equal(t, "", table.Cell(table.Rows[0], -1))
}

func TestReadEmptyFile(t *testing.T) {
	_, err := Read("empty.csv", []byte("\n \n"))
	assert.True(t, errors.Is(err, ErrNoRows))
}

func TestReadUnsupportedExtension(t *testing.T) {
	_, err := Read("sales.pdf", []byte("x"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestReadExcelFirstSheet(t *testing.T) {
	payload := tabulartest.Workbook(t, [][]any{
		{"Email", "Premium", "Policy #"},
		{"a@x.com", 1200.5, "P-1"},
		{"b@x.com", "n/a", ""},
	})

	table, err := Read("sales.xlsx", payload)
	require.NoError(t, err)

	assert.Equal(t, []string{"Email", "Premium", "Policy #"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "1200.5", table.Rows[0][1])
	assert.Equal(t, "n/a", table.Rows[1][1])
	assert.Equal(t, "", table.Rows[1][2])
}

func TestReadExcelRejectsGarbage(t *testing.T) {
	_, err := Read("sales.xlsx", []byte("not a zip archive"))
	assert.Error(t, err)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{raw: "2024-05-14", want: time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)},
		{raw: "5/14/2024", want: time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)},
		{raw: "05/14/2024 13:45", want: time.Date(2024, 5, 14, 13, 45, 0, 0, time.UTC)},
		{raw: "2024-05-14T08:00:00Z", want: time.Date(2024, 5, 14, 8, 0, 0, 0, time.UTC)},
		{raw: "2024-05-14 1:45:30 PM", want: time.Date(2024, 5, 14, 13, 45, 30, 0, time.UTC)},
		{raw: "05/14/2024 01:45:30 PM", want: time.Date(2024, 5, 14, 13, 45, 30, 0, time.UTC)},
		{raw: "05/14/2024 09:05 AM", want: time.Date(2024, 5, 14, 9, 5, 0, 0, time.UTC)},
		{raw: "45426", want: time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(tt.raw)
		require.NoError(t, err, "raw %q", tt.raw)
		assert.True(t, tt.want.Equal(got), "raw %q got %s", tt.raw, got)
	}

	_, err := ParseTimestamp("yesterday")
	assert.Error(t, err)
	_, err = ParseTimestamp("")
	assert.Error(t, err)
}
