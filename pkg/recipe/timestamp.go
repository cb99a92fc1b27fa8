package recipe

import (
	"encoding/json"
	"fmt"
	"time"
)

func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Timestamp wraps time.Time with RFC3339 JSON round-tripping and an empty
// string for the zero value, matching the document schema.
type Timestamp struct {
	time.Time
}

func Now() Timestamp {
	return Timestamp{Time: time.Now().UTC()}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t)), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

// String keeps sub-second precision so creation order survives the JSON
// round trip even for writes within the same second.
func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339Nano)
}

const layoutUS = "January 2, 2006"

// FormatDate renders the timestamp the way the page header shows it, or
// an empty string when the store has not assigned one yet.
func (t Timestamp) FormatDate() string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(layoutUS)
}
