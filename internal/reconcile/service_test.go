package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/rpattn/leadrecon/internal/aggregate"
	"github.com/rpattn/leadrecon/internal/domain"
	"github.com/rpattn/leadrecon/internal/ingestion"
	"github.com/rpattn/leadrecon/internal/matching"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	eqLeads = `Email,First Name,Last Name,Phone,Zip,Created Date,Cost
jane@example.com,Jane,Doe,(555) 123-4567,30301,2024-05-02,150
john@example.com,John,Smith,555-987-6543,30302,2024-05-20,40
`
	pooledLeads = `Email,First,Last,Phone,Date
amy@example.com,Amy,Lee,5550001111,2024-06-01
bo@example.com,Bo,Ray,5550002222,2024-06-03
`
	salesLedger = `Email,Policy #,Premium,Items,Assigned To User
jane@example.com,P-1,1200,2,Alice
jane@example.com,P-2,300,1,Alice
amy@example.com,,abc,,Bob
`
	dispositionLog = `First Name,Last Name,Phone,Milestone,Folders
jane,doe,5551234567,Quoted,Active
john,smith,5559876543,Sold,!Returned
bo,ray,,Contacted,Active
`
)

func fullRequest() Request {
	return Request{
		Leads: []File{
			{Name: "EQ_SpringPromo.csv", Data: []byte(eqLeads)},
			{Name: "SmartFinancial-Auto.csv", Data: []byte(pooledLeads)},
			{Name: "nodelimiter.csv", Data: []byte(eqLeads)},
		},
		Sales:        &File{Name: "sales.csv", Data: []byte(salesLedger)},
		Dispositions: &File{Name: "dispositions.csv", Data: []byte(dispositionLog)},
		PooledSpend:  decimal.NewFromInt(90),
	}
}

func TestServiceRun(t *testing.T) {
	svc := NewService(DefaultConfig())

	result, err := svc.Run(context.Background(), fullRequest())
	require.NoError(t, err)

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "nodelimiter.csv", result.Skipped[0].FileName)
	assert.Equal(t, domain.FileKindLead, result.Skipped[0].Kind)

	assert.Equal(t, matching.JoinEmail, result.JoinStrategy)
	require.Len(t, result.Records, 5, "jane fans out over two policies")
	assert.Equal(t, []string{"2024-05", "2024-06"}, result.Months)
	assert.Equal(t, []string{"Auto", "SpringPromo"}, result.Campaigns)

	byEmail := map[string][]domain.Record{}
	for _, r := range result.Records {
		byEmail[r.Email] = append(byEmail[r.Email], r)
	}

	jane := byEmail["jane@example.com"]
	require.Len(t, jane, 2)
	assert.True(t, jane[0].Cost.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, "Quoted", jane[0].Milestone)
	assert.True(t, jane[0].IsConnected)
	assert.True(t, jane[0].IsQuoted)
	assert.True(t, jane[1].IsSold)
	assert.Equal(t, "P-2", jane[1].PolicyNumber)

	john := byEmail["john@example.com"][0]
	assert.False(t, john.HasMilestone(), "returned dispositions never match")
	assert.True(t, john.Cost.Equal(decimal.NewFromInt(40)))

	amy := byEmail["amy@example.com"][0]
	assert.True(t, amy.Cost.Equal(decimal.NewFromInt(45)))
	assert.True(t, amy.Premium.IsZero())
	assert.False(t, amy.IsSold)
	assert.Equal(t, "Bob", amy.AssignedAgent)

	bo := byEmail["bo@example.com"][0]
	assert.Equal(t, "Contacted", bo.Milestone)
	assert.Equal(t, domain.MilestoneSourceName, bo.MilestoneSource)
	assert.True(t, bo.Cost.Equal(decimal.NewFromInt(45)))

	summaries := aggregate.NewAggregator().Summarize(result.Records, aggregate.Query{})
	require.Len(t, summaries, 2)
	eq := summaries[0]
	assert.Equal(t, "EQ_SpringPromo", eq.Key)
	assert.Equal(t, 2, eq.Leads)
	assert.Equal(t, 2, eq.Policies)
	assert.True(t, eq.Spend.Equal(decimal.RequireFromString("41.5")))
}

func TestServiceRunInsufficientInput(t *testing.T) {
	svc := NewService(DefaultConfig())

	t.Run("no sales file", func(t *testing.T) {
		req := fullRequest()
		req.Sales = nil
		_, err := svc.Run(context.Background(), req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInsufficientInput))

		var insufficient *InsufficientInputError
		require.True(t, errors.As(err, &insufficient))
		assert.Equal(t, "no sales file supplied", insufficient.Reason)
	})

	t.Run("only malformed lead files", func(t *testing.T) {
		req := fullRequest()
		req.Leads = []File{{Name: "leads.csv", Data: []byte(eqLeads)}, {Name: "EQ_Empty.csv"}}
		result, err := svc.Run(context.Background(), req)
		assert.True(t, errors.Is(err, ErrInsufficientInput))
		require.Len(t, result.Skipped, 2)
		assert.Equal(t, "EQ_Empty.csv", result.Skipped[1].FileName)
	})
}

func TestServiceRunUnreadableSalesIsSkipped(t *testing.T) {
	req := fullRequest()
	req.Sales = &File{Name: "sales.xlsx", Data: []byte("not a workbook")}

	result, err := NewService(DefaultConfig()).Run(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Skipped, 2)
	assert.Equal(t, domain.FileKindSales, result.Skipped[1].Kind)
	assert.Len(t, result.Records, 4)
	for _, r := range result.Records {
		assert.Empty(t, r.PolicyNumber)
	}
}

func TestServiceRunCustomerJoin(t *testing.T) {
	sales := "Customer,Policy,Premium\nJane Doe,P-9,500\n"
	req := fullRequest()
	req.Sales = &File{Name: "sales.csv", Data: []byte(sales)}

	result, err := NewService(DefaultConfig()).Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, matching.JoinCustomer, result.JoinStrategy)

	sold := 0
	for _, r := range result.Records {
		if r.IsSold {
			sold++
			assert.Equal(t, "jane@example.com", r.Email)
			assert.Equal(t, domain.SalesMatchCustomer, r.SalesMatchedBy)
		}
	}
	assert.Equal(t, 1, sold)
}

func TestServiceRunCustomerJoinFromNameColumns(t *testing.T) {
	leads := "First Name,Last Name,Phone\nJane,Doe,5551234567\n"
	sales := "First Name,Last Name,Policy #,Premium\nJane,Doe,P-1,500\n"
	req := Request{
		Leads:        []File{{Name: "EQ_Spring.csv", Data: []byte(leads)}},
		Sales:        &File{Name: "sales.csv", Data: []byte(sales)},
		JoinStrategy: matching.JoinCustomer,
	}

	result, err := NewService(DefaultConfig()).Run(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	record := result.Records[0]
	assert.True(t, record.IsSold)
	assert.Equal(t, "P-1", record.PolicyNumber)
	assert.True(t, record.Premium.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, domain.SalesMatchCustomer, record.SalesMatchedBy)
}

func TestServiceRunConfiguredRules(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VendorRules = ingestion.NewVendorRules(nil, "")
	req := fullRequest()
	req.Leads = req.Leads[:1]

	result, err := NewService(cfg).Run(context.Background(), req)
	require.NoError(t, err)
	for _, r := range result.Records {
		if r.Email == "jane@example.com" {
			assert.True(t, r.Cost.Equal(decimal.NewFromInt(150)), "cents rule disabled")
		}
	}
}

func TestServiceRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewService(DefaultConfig()).Run(ctx, fullRequest())
	assert.ErrorIs(t, err, context.Canceled)
}
