// Package payload models the loosely-structured GraphQL user payload and
// normalizes it once, at the boundary, into a fully-defaulted record.
package payload

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Raw is the wire shape of the cached payload: {"data":{"user": ...}}.
// The user field may hold a single object, a one-element list, or nothing;
// {"data":{}} is the explicit empty-dataset sentinel stored after a degraded
// fetch.
type Raw struct {
	Data RawData `json:"data"`
}

// RawData carries the ambiguous user field untouched until extraction.
type RawData struct {
	User json.RawMessage `json:"user,omitempty"`
}

// Empty reports whether the payload is the empty-dataset sentinel.
func (r Raw) Empty() bool {
	trimmed := bytes.TrimSpace(r.Data.User)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Amount is a float64 that tolerates malformed wire values: numbers, numeric
// strings, null, and anything else all decode without error; whatever does not
// coerce becomes 0.
type Amount float64

// UnmarshalJSON never fails; malformed numerics resolve to 0.
func (a *Amount) UnmarshalJSON(b []byte) error {
	*a = 0
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*a = Amount(f)
		return nil
	}
	var quoted string
	if err := json.Unmarshal(b, &quoted); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(quoted), 64); err == nil {
			*a = Amount(f)
		}
	}
	return nil
}

// Identifier is an id that may arrive as a JSON number or string.
type Identifier string

// UnmarshalJSON accepts both representations; anything else leaves it empty.
func (id *Identifier) UnmarshalJSON(b []byte) error {
	*id = ""
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*id = Identifier(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		*id = Identifier(num.String())
	}
	return nil
}

// Transaction is one normalized amount+metadata record: an XP award, audit
// event, or skill grade.
type Transaction struct {
	Amount    float64
	Path      string
	CreatedAt string
	Type      string
}

// CreatedTime parses the transaction timestamp. Absent or unparseable values
// yield the zero time, which sorts oldest.
func (t Transaction) CreatedTime() time.Time {
	return ParseTime(t.CreatedAt)
}

// ParseTime accepts the timestamp flavors seen on the wire: RFC3339 with and
// without fractional seconds, and bare dates.
func ParseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// User is the normalized, fully-defaulted projection of the payload's user
// record. Every field is safe to read; absence resolved to zero values during
// extraction.
type User struct {
	Login     string
	ID        string
	Email     string
	FirstName string
	LastName  string

	TotalUp   float64
	TotalDown float64

	// Transactions is the recent set, TopTransactions the server-pre-ranked
	// set; they are distinct lists, never slices of one another.
	Transactions    []Transaction
	TopTransactions []Transaction
	TopSkills       []Transaction

	// AggregateSum is the server-precomputed XP total, preferred over folding
	// when present.
	AggregateSum *float64
}
