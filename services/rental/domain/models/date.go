package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of a Date.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Date is a calendar day with no time-of-day or zone. The zero value is
// "unset" and fails validation.
type Date struct {
	t time.Time // always UTC midnight
}

// NewDate returns the given calendar day. Out-of-range values normalise the
// way time.Date does (Feb 30 becomes Mar 2).
func NewDate(year int, month time.Month, d int) Date {
	return Date{t: time.Date(year, month, d, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return Date{t: t}, nil
}

// MustParseDate is ParseDate for literals; it panics on bad input.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool { return d.t.IsZero() }
func (d Date) Time() time.Time { return d.t }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }
func (d Date) Compare(o Date) int { return d.t.Compare(o.t) }
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) String() string { return d.t.Format(DateLayout) }

// DaysUntil counts whole days from d to o, negative when o is earlier.
// time.Duration overflows past ~292 years, so this uses Unix seconds.
func (d Date) DaysUntil(o Date) int {
	return int((o.t.Unix() - d.t.Unix()) / secondsPerDay)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s: want \"YYYY-MM-DD\"", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan accepts DATE columns from pgx (time.Time) and TEXT columns from
// SQLite (string or []byte).
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(s string) error {
	// SQLite may hand back a full timestamp if the column was written by
	// another tool; the calendar day is the first ten characters.
	if len(s) > len(DateLayout) && strings.ContainsAny(s[len(DateLayout):len(DateLayout)+1], "T ") {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the day as YYYY-MM-DD, which both Postgres DATE and SQLite
// TEXT columns accept and which sorts lexically in calendar order.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start Date `json:"start_date"`
	End   Date `json:"end_date"`
}

func (r DateRange) String() string {
	return r.Start.String() + ".." + r.End.String()
}
