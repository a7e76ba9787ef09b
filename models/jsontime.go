package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONTime wraps time.Time so we can control both JSON un/marshaling and
// SQL driver encoding. Quote dates arrive in several shapes depending on
// where the record came from: the quote form posts a bare calendar date
// ("2025-01-15"), migrated records carry full ISO timestamps, and some
// hand-edited ones lack the timezone suffix.
type JSONTime time.Time

// UnmarshalJSON parses RFC3339 ("2025-05-16T15:32:25Z"), date-only
// ("2025-05-16"), or the fraction-bearing forms without a timezone.
func (jt *JSONTime) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		*jt = JSONTime(time.Time{})
		return nil
	}

	t, err := ParseFlexibleTime(s)
	if err != nil {
		return fmt.Errorf("JSONTime.UnmarshalJSON: cannot parse %q: %w", s, err)
	}
	*jt = JSONTime(t)
	return nil
}

// ParseFlexibleTime tries the timestamp layouts seen in stored records,
// most precise first.
func ParseFlexibleTime(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05.000",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// MarshalJSON always emits full RFC3339 ("…Z").
func (jt JSONTime) MarshalJSON() ([]byte, error) {
	t := time.Time(jt)
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// Value implements driver.Valuer so GORM can turn JSONTime into a SQL
// TIMESTAMPTZ parameter.
func (jt JSONTime) Value() (driver.Value, error) {
	return time.Time(jt), nil
}

// Scan implements sql.Scanner so GORM can read TIMESTAMPTZ back into
// JSONTime when querying.
func (jt *JSONTime) Scan(src interface{}) error {
	if src == nil {
		*jt = JSONTime(time.Time{})
		return nil
	}

	switch v := src.(type) {
	case time.Time:
		*jt = JSONTime(v)
		return nil
	case []byte:
		t, err := ParseFlexibleTime(string(v))
		if err != nil {
			return fmt.Errorf("JSONTime.Scan: parse %q: %w", string(v), err)
		}
		*jt = JSONTime(t)
		return nil
	case string:
		t, err := ParseFlexibleTime(v)
		if err != nil {
			return fmt.Errorf("JSONTime.Scan: parse %q: %w", v, err)
		}
		*jt = JSONTime(t)
		return nil
	default:
		return fmt.Errorf("JSONTime.Scan: unsupported type %T", src)
	}
}
