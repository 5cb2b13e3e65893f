package ingestion

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FilenameSeparators are tried in order; the first one present in the file
// stem splits vendor from campaign at its first occurrence.
var FilenameSeparators = []string{"_", "-", " "}

// SplitVendorCampaign derives vendor and campaign from a lead file name such
// as "EQ_SpringPromo.csv".
func SplitVendorCampaign(fileName string) (vendor, campaign string, err error) {
	base := filepath.Base(strings.TrimSpace(fileName))
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	for _, sep := range FilenameSeparators {
		idx := strings.Index(stem, sep)
		if idx < 0 {
			continue
		}
		vendor = strings.TrimSpace(stem[:idx])
		campaign = strings.TrimSpace(stem[idx+len(sep):])
		if vendor == "" || campaign == "" {
			return "", "", fmt.Errorf("%w: %q has an empty vendor or campaign", ErrMalformedFilename, base)
		}
		return vendor, campaign, nil
	}
	return "", "", fmt.Errorf("%w: %q has no vendor/campaign separator", ErrMalformedFilename, base)
}
