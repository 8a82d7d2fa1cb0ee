package timecodec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToStoreEncodesTimes(t *testing.T) {
	at := time.Date(2025, 6, 14, 9, 30, 0, 500, time.UTC)
	doc := map[string]any{
		"name":      "Rasoa",
		"orderDate": at,
	}

	out := ToStore(doc)

	enc, ok := out["orderDate"].(map[string]any)
	require.True(t, ok, "time value should encode to a pair map")
	assert.Equal(t, at.Unix(), enc["seconds"])
	assert.Equal(t, int64(500), enc["nanoseconds"])
	assert.Equal(t, "Rasoa", out["name"])

	// Input must not be mutated.
	assert.IsType(t, time.Time{}, doc["orderDate"])
}

func TestRoundTripNested(t *testing.T) {
	due := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	last := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	doc := map[string]any{
		"title": "follow up",
		"due":   due,
		"stats": map[string]any{
			"lastOrderAt": last,
			"orderCount":  int64(4),
		},
		"tags":  []any{"a", "b"},
		"done":  false,
		"spent": 185000.0,
	}

	got := FromStore(ToStore(doc))

	assert.Equal(t, doc, got)
}

func TestArraysPassThroughUntouched(t *testing.T) {
	notes := []any{"prefers mornings", "regular"}
	doc := map[string]any{"notes": notes}

	out := ToStore(doc)

	assert.Equal(t, notes, out["notes"])
}

func TestFromStoreDecodesJSONNumbers(t *testing.T) {
	// JSON decoding produces float64 for both fields.
	doc := map[string]any{
		"noteDate": map[string]any{"seconds": float64(1718357400), "nanoseconds": float64(0)},
	}

	out := FromStore(doc)

	got, ok := out["noteDate"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.Unix(1718357400, 0).UTC(), got)
}

func TestFromStoreLeavesNonPairMapsAlone(t *testing.T) {
	doc := map[string]any{
		"address": map[string]any{"seconds": int64(1), "city": "Antananarivo"},
	}

	out := FromStore(doc)

	m, ok := out["address"].(map[string]any)
	require.True(t, ok, "a map that is not a timestamp pair must stay a map")
	assert.Equal(t, "Antananarivo", m["city"])
}

func TestFromStoreNormalizesNativeTimes(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	at := time.Date(2025, 6, 14, 12, 30, 0, 0, loc)

	out := FromStore(map[string]any{"orderDate": at})

	got := out["orderDate"].(time.Time)
	assert.True(t, at.Equal(got))
	assert.Equal(t, time.UTC, got.Location())
}

func TestNilAndEmpty(t *testing.T) {
	assert.Nil(t, ToStore(nil))
	assert.Nil(t, FromStore(nil))
	assert.Empty(t, ToStore(map[string]any{}))
}
