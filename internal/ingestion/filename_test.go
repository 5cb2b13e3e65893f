package ingestion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitVendorCampaign(t *testing.T) {
	tests := []struct {
		fileName string
		vendor   string
		campaign string
	}{
		{fileName: "V_C.csv", vendor: "V", campaign: "C"},
		{fileName: "EQ_SpringPromo.csv", vendor: "EQ", campaign: "SpringPromo"},
		{fileName: "EQ_Tier 1_retarget.csv", vendor: "EQ", campaign: "Tier 1_retarget"},
		{fileName: "QuoteWizard-Auto Leads.csv", vendor: "QuoteWizard", campaign: "Auto Leads"},
		{fileName: "SmartFinancial May.csv", vendor: "SmartFinancial", campaign: "May"},
		{fileName: "uploads/EQ_Fall.v2.csv", vendor: "EQ", campaign: "Fall.v2"},
		{fileName: "Alpha-Beta_Gamma.csv", vendor: "Alpha-Beta", campaign: "Gamma"},
	}
	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			vendor, campaign, err := SplitVendorCampaign(tt.fileName)
			require.NoError(t, err)
			assert.Equal(t, tt.vendor, vendor)
			assert.Equal(t, tt.campaign, campaign)
		})
	}
}

func TestSplitVendorCampaignMalformed(t *testing.T) {
	for _, name := range []string{"leads.csv", "_Spring.csv", "EQ_.csv", ".csv"} {
		_, _, err := SplitVendorCampaign(name)
		assert.True(t, errors.Is(err, ErrMalformedFilename), "file %q", name)
	}
}
