package utils

import (
	"strconv"
	"time"
)

// ExportTimeLayout is the timestamp format used inside exported files
const ExportTimeLayout = "2006-01-02 15:04:05"

// ExportFileName returns the name of a CSV export taken at t, e.g. export_20240301_120000.csv
func ExportFileName(t time.Time) string {
	return "export_" + t.Format("20060102_150405") + ".csv"
}

// FormatOptionalInt renders a nil pointer as an empty string
func FormatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// FormatOptionalString renders a nil pointer as an empty string
func FormatOptionalString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
