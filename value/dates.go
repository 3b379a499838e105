package value

import "time"

// Canonical date/time formats.
const (
	DateFormat     = "2006-01-02"
	TimeFormat     = "15:04:05"
	DateTimeFormat = "2006-01-02 15:04:05"
)

// ParseDate/ParseTime/ParseDateTime parse a literal under the canonical
// format, used both by implicit Text->Date/Time/DateTime casts and by
// explicit CAST.
func ParseDate(literal string) (int64, bool) {
	t, err := time.Parse(DateFormat, literal)
	if err != nil {
		return 0, false
	}
	return t.Unix(), true
}

func ParseTime(literal string) (int64, bool) {
	t, err := time.Parse(TimeFormat, literal)
	if err != nil {
		return 0, false
	}
	return t.Unix(), true
}

func ParseDateTime(literal string) (int64, bool) {
	t, err := time.Parse(DateTimeFormat, literal)
	if err != nil {
		return 0, false
	}
	return t.Unix(), true
}
