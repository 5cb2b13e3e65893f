package tabular

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var timeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 3:04:05 PM",
	"2006-01-02 3:04 PM",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"01/02/2006 03:04:05 PM",
	"01/02/2006 03:04 PM",
	"01-02-06",
	"1/2/06",
	"Jan 2, 2006",
	"January 2, 2006",
}

// excel serials between these bounds are read as dates (1954..2119)
const (
	minExcelSerial = 20000
	maxExcelSerial = 80000
)

// ParseTimestamp reads the date formats seen in vendor exports, including raw
// spreadsheet date serials.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial >= minExcelSerial && serial <= maxExcelSerial {
		return excelize.ExcelDateToTime(serial, false)
	}
	return time.Time{}, errors.New("unrecognized timestamp format")
}
