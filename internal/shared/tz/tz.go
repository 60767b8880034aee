// Package tz converts between the Bangkok civil time the API speaks and the
// UTC instants the database stores. Thailand has no daylight saving, so a
// fixed +07:00 offset is exact and needs no tz database.
package tz

import "time"

const (
	// CivilLayout is the local timestamp format accepted by window
	// configuration, e.g. "2025-11-01T08:30:00".
	CivilLayout = "2006-01-02T15:04:05"

	ZoneName = "Asia/Bangkok"
)

var Bangkok = time.FixedZone("ICT", 7*60*60)

func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseBangkok interprets a civil timestamp as Bangkok local time and returns
// the equivalent UTC instant.
func ParseBangkok(value string) (time.Time, error) {
	t, err := time.ParseInLocation(CivilLayout, value, Bangkok)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ToBangkok renders a stored UTC instant in the local zone. Nil passes
// through so optional window bounds stay optional.
func ToBangkok(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	local := t.In(Bangkok)
	return &local
}

// AsUTC normalizes a possibly zoneless timestamp read back from the database.
func AsUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
