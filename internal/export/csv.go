package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rpattn/leadrecon/internal/domain"

	"github.com/shopspring/decimal"
)

// SummaryColumns is the header row of summary exports.
var SummaryColumns = []string{
	"key", "vendor", "campaign", "agent", "zip",
	"leads", "rows", "policies", "customers", "connects", "quotes",
	"premium", "items", "spend",
	"connect_rate", "quote_rate", "policy_close_rate", "lead_close_rate", "item_close_rate", "warm_close_rate",
	"spend_to_earn", "cost_per_lead", "cost_per_policy", "cost_per_customer", "cost_per_item",
}

// RecordColumns is the header row of record exports.
var RecordColumns = []string{
	"id", "vendor", "campaign", "source_file", "email", "first_name", "last_name", "phone", "zip",
	"created_at", "month", "cost", "milestone", "milestone_source",
	"is_connected", "is_quoted", "is_sold",
	"policy_number", "premium", "items", "assigned_agent", "sales_matched_by",
}

// WriteSummariesCSV writes one row per summary.
func WriteSummariesCSV(w io.Writer, summaries []domain.Summary) error {
	return writeCSV(w, SummaryColumns, summaryRows(summaries))
}

// WriteRecordsCSV writes one row per reconciled record.
func WriteRecordsCSV(w io.Writer, records []domain.Record) error {
	return writeCSV(w, RecordColumns, recordRows(records))
}

func writeCSV(w io.Writer, headers []string, rows [][]string) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for idx, row := range rows {
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", idx+1, err)
		}
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func summaryRows(summaries []domain.Summary) [][]string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Key, s.Vendor, s.Campaign, s.Agent, s.Zip,
			formatValue(s.Leads), formatValue(s.Rows), formatValue(s.Policies),
			formatValue(s.Customers), formatValue(s.Connects), formatValue(s.Quotes),
			formatValue(s.Premium), formatValue(s.Items), formatValue(s.Spend),
			formatValue(s.ConnectRate), formatValue(s.QuoteRate), formatValue(s.PolicyCloseRate),
			formatValue(s.LeadCloseRate), formatValue(s.ItemCloseRate), formatValue(s.WarmCloseRate),
			formatValue(s.SpendToEarn), formatValue(s.CostPerLead), formatValue(s.CostPerPolicy),
			formatValue(s.CostPerCustomer), formatValue(s.CostPerItem),
		})
	}
	return rows
}

func recordRows(records []domain.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.ID.String(), r.Vendor, r.Campaign, r.SourceFile, r.Email, r.FirstName, r.LastName, r.Phone, r.Zip,
			formatValue(r.CreatedAt), r.Month, formatValue(r.Cost), r.Milestone, string(r.MilestoneSource),
			formatValue(r.IsConnected), formatValue(r.IsQuoted), formatValue(r.IsSold),
			r.PolicyNumber, formatValue(r.Premium), formatValue(r.Items), r.AssignedAgent, string(r.SalesMatchedBy),
		})
	}
	return rows
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case decimal.Decimal:
		return v.String()
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.UTC().Format(time.RFC3339)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', 4, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
