// Package timecodec converts between native time.Time values and the
// {seconds, nanoseconds} pair encoding Firestore uses on the wire and in
// exported datasets. Documents coming out of the legacy client, migration
// fixtures, and raw patch payloads all carry the pair form; everything
// inside this service works with time.Time.
package timecodec

import "time"

// Pair field names as they appear in Firestore wire payloads.
const (
	fieldSeconds     = "seconds"
	fieldNanoseconds = "nanoseconds"
)

// ToStore returns a deep copy of doc in which every time.Time value is
// replaced by its {seconds, nanoseconds} pair. Traversal recurses into
// nested maps; slices pass through untouched so list-of-primitive fields
// are never reshaped. All other values are copied as-is.
func ToStore(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = encodeValue(v)
	}
	return out
}

// FromStore is the inverse of ToStore: every value shaped like a
// {seconds, nanoseconds} pair becomes a UTC time.Time. Values that are
// already time.Time (the Go SDK decodes Firestore timestamps natively)
// are normalized to UTC and kept. FromStore(ToStore(x)) preserves every
// instant in x.
func FromStore(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = decodeValue(v)
	}
	return out
}

func encodeValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return map[string]any{
			fieldSeconds:     t.Unix(),
			fieldNanoseconds: int64(t.Nanosecond()),
		}
	case *time.Time:
		if t == nil {
			return nil
		}
		return encodeValue(*t)
	case map[string]any:
		return ToStore(t)
	default:
		return v
	}
}

func decodeValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case map[string]any:
		if ts, ok := pairToTime(t); ok {
			return ts
		}
		return FromStore(t)
	default:
		return v
	}
}

// pairToTime recognizes a map holding exactly a timestamp pair. Numeric
// values may arrive as int64 (our own encoding) or float64 (JSON-decoded
// payloads).
func pairToTime(m map[string]any) (time.Time, bool) {
	if len(m) != 2 {
		return time.Time{}, false
	}
	sec, ok := asInt64(m[fieldSeconds])
	if !ok {
		return time.Time{}, false
	}
	nanos, ok := asInt64(m[fieldNanoseconds])
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(sec, nanos).UTC(), true
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
