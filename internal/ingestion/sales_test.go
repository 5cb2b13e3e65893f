package ingestion

import (
	"errors"
	"testing"

	"github.com/rpattn/leadrecon/internal/domain"
	"github.com/rpattn/leadrecon/internal/tabular/tabulartest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesParserCSV(t *testing.T) {
	data := `Customer,Email,Policy #,Premium,Items,Assigned To User
jane doe,JANE@example.com,P-100,1200.50,2,Alice Agent
john smith,john@example.com,P-200,pending,x,
`
	sales, err := NewSalesParser().Parse("sales.csv", []byte(data))
	require.NoError(t, err)
	require.Len(t, sales, 2)

	assert.Equal(t, "jane@example.com", sales[0].Email)
	assert.Equal(t, "JANE DOE", sales[0].Customer)
	assert.Equal(t, "P-100", sales[0].PolicyNumber)
	assert.True(t, sales[0].Premium.Equal(decimal.RequireFromString("1200.5")))
	assert.True(t, sales[0].Items.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "Alice Agent", sales[0].AssignedAgent)

	// non-numeric premium and items coerce to zero rather than failing
	assert.True(t, sales[1].Premium.IsZero())
	assert.True(t, sales[1].Items.IsZero())
	assert.Empty(t, sales[1].AssignedAgent)
}

func TestSalesParserMissingColumnsDefault(t *testing.T) {
	sales, err := NewSalesParser().Parse("sales.csv", []byte("email\na@x.com\n"))
	require.NoError(t, err)
	require.Len(t, sales, 1)

	assert.Equal(t, "a@x.com", sales[0].Email)
	assert.Empty(t, sales[0].PolicyNumber)
	assert.True(t, sales[0].Premium.IsZero())
	assert.True(t, sales[0].Items.IsZero())
	assert.Empty(t, sales[0].AssignedAgent)
}

func TestSalesParserXLSX(t *testing.T) {
	payload := tabulartest.Workbook(t, [][]any{
		{"Email", "Policy #", "Premium", "Items", "Assigned To User"},
		{"a@x.com", "P-1", 900, 1, "Bob"},
		{"b@x.com", "", "N/A", "", ""},
	})

	sales, err := NewSalesParser().Parse("Sales Data.xlsx", payload)
	require.NoError(t, err)
	require.Len(t, sales, 2)

	assert.True(t, sales[0].Premium.Equal(decimal.NewFromInt(900)))
	assert.Equal(t, "Bob", sales[0].AssignedAgent)
	assert.True(t, sales[1].Premium.IsZero())
	assert.Empty(t, sales[1].PolicyNumber)
}

func TestSalesParserUnreadable(t *testing.T) {
	_, err := NewSalesParser().Parse("sales.xlsx", []byte("definitely not a workbook"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreadableFile))

	var fileErr *FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, domain.FileKindSales, fileErr.Kind)
}

func TestSalesParserCustomerFromNameColumns(t *testing.T) {
	data := "First Name,Last Name,Policy #,Premium\n jane , doe ,P-1,500\n,,P-2,10\n"
	sales, err := NewSalesParser().Parse("sales.csv", []byte(data))
	require.NoError(t, err)
	require.Len(t, sales, 2)

	assert.Equal(t, "JANE DOE", sales[0].Customer)
	assert.Equal(t, "P-1", sales[0].PolicyNumber)
	assert.Empty(t, sales[1].Customer)
}

func TestSalesParserCustomerColumnWinsOverNames(t *testing.T) {
	data := "Customer,First Name,Last Name\nJane Q Doe,Jane,Doe\n"
	sales, err := NewSalesParser().Parse("sales.csv", []byte(data))
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "JANE Q DOE", sales[0].Customer)
}

func TestSalesParserPolicyNumberColumn(t *testing.T) {
	data := "Email,Policy Type,Policy #,Premium\na@x.com,Auto,,0\nb@x.com,Home,H-7,250\n"
	sales, err := NewSalesParser().Parse("sales.csv", []byte(data))
	require.NoError(t, err)
	require.Len(t, sales, 2)

	assert.Empty(t, sales[0].PolicyNumber)
	assert.Equal(t, "H-7", sales[1].PolicyNumber)
}
