package model

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// The ingestion process has written dates both as BSON datetimes and as strings,
// so the record date fields decode either form instead of failing the whole cursor.

// Day is a calendar day kept as YYYY-MM-DD.
type Day string

// UnmarshalBSONValue accepts a string or a datetime. Datetimes are reduced to their UTC day.
func (d *Day) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		*d = Day(normalizeDay(raw.StringValue()))
	case bsontype.DateTime:
		*d = Day(time.UnixMilli(raw.DateTime()).UTC().Format(time.DateOnly))
	case bsontype.Null, bsontype.Undefined:
		*d = ""
	default:
		return fmt.Errorf("cannot decode %s into a day", t)
	}
	return nil
}

// normalizeDay trims a timestamp string down to its day when it starts with one.
func normalizeDay(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > len(time.DateOnly) {
		if _, err := time.Parse(time.DateOnly, s[:len(time.DateOnly)]); err == nil {
			return s[:len(time.DateOnly)]
		}
	}
	return s
}

// Date is an instant stored either as a BSON datetime or as an ISO 8601 string.
// JSON encoding is that of time.Time.
type Date struct {
	time.Time
}

// NewDate wraps t.
func NewDate(t time.Time) *Date {
	return &Date{Time: t}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

// UnmarshalBSONValue accepts a datetime or a string in one of the ISO 8601 layouts.
// Strings without a zone are read as UTC. Unparseable strings decode to the zero time.
func (d *Date) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.DateTime:
		d.Time = time.UnixMilli(raw.DateTime()).UTC()
	case bsontype.String:
		d.Time = parseDate(raw.StringValue())
	case bsontype.Null, bsontype.Undefined:
		d.Time = time.Time{}
	default:
		return fmt.Errorf("cannot decode %s into a date", t)
	}
	return nil
}

// MarshalBSONValue writes a BSON datetime.
func (d Date) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(d.Time)
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
