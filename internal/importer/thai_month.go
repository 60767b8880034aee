package importer

import (
	"regexp"
	"strings"
)

// thaiMonths maps the Thai month abbreviations used in upload sheet labels to
// English month names, e.g. "พ.ย.2568" -> "November2568".
var thaiMonths = map[string]string{
	"ม.ค.":  "January",
	"ก.พ.":  "February",
	"มี.ค.": "March",
	"เม.ย.": "April",
	"พ.ค.":  "May",
	"มิ.ย.": "June",
	"ก.ค.":  "July",
	"ส.ค.":  "August",
	"ก.ย.":  "September",
	"ต.ค.":  "October",
	"พ.ย.":  "November",
	"ธ.ค.":  "December",
}

var sheetLabelPattern = regexp.MustCompile(`^(\D+)(\d{4})$`)

// NormalizeSheetLabel strips all whitespace and rewrites a recognized
// <Thai-month><4-digit-year> label to <English-month><year>. Anything that
// does not match the pattern, or whose prefix is not one of the twelve
// abbreviations, passes through unchanged. Permissive, not validating.
func NormalizeSheetLabel(s string) string {
	stripped := strings.Join(strings.Fields(s), "")

	m := sheetLabelPattern.FindStringSubmatch(stripped)
	if m == nil {
		return stripped
	}

	if english, ok := thaiMonths[m[1]]; ok {
		return english + m[2]
	}
	return stripped
}
