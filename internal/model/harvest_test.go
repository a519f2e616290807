package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPS_String(t *testing.T) {
	assert.Equal(t, "34.0522, -118.2437", GPS{Lat: 34.05221, Lon: -118.24369}.String())
	assert.Equal(t, "0.0000, 0.0000", GPS{}.String())
}

func TestHarvest_JSONFieldNames(t *testing.T) {
	h := Harvest{
		ID:        "1",
		HerbName:  "Neem",
		Quantity:  0.8,
		Unit:      "kg",
		Date:      time.Date(2024, 7, 18, 9, 0, 0, 0, time.UTC),
		PhotoURL:  "https://example.com/neem.jpg",
		PhotoHint: "neem leaves",
		GPS:       GPS{Lat: 1, Lon: 2},
	}
	data, err := json.Marshal(h)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"id", "herbName", "quantity", "unit", "date", "photoUrl", "photoHint", "gps"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, "2024-07-18T09:00:00Z", raw["date"])
}
