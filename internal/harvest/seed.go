package harvest

import (
	"time"

	"github.com/sells-group/herb-harvest/internal/model"
)

var referencePoint = model.GPS{Lat: 34.0522, Lon: -118.2437}

// Seed returns the built-in demo harvests. Each call returns a fresh slice.
func Seed() []model.Harvest {
	return []model.Harvest{
		seedRecord("1", "Ashwagandha", 1.5, "2024-07-20T10:00:00Z", "ashwagandha plant"),
		seedRecord("2", "Tulsi (Holy Basil)", 2.0, "2024-07-19T14:30:00Z", "tulsi plant"),
		seedRecord("3", "Neem", 0.8, "2024-07-18T09:00:00Z", "neem leaves"),
		seedRecord("4", "Aloe Vera", 1.2, "2024-07-17T11:00:00Z", "aloe vera"),
		seedRecord("5", "Turmeric", 2.5, "2024-07-16T16:00:00Z", "turmeric plant"),
	}
}

func seedRecord(id, herb string, qty float64, date, hint string) model.Harvest {
	d, err := time.Parse(time.RFC3339, date)
	if err != nil {
		panic(err)
	}
	return model.Harvest{
		ID:        id,
		HerbName:  herb,
		Quantity:  qty,
		Unit:      model.DefaultUnit,
		Date:      d,
		PhotoURL:  "https://picsum.photos/seed/medicinal" + id + "/400/300",
		PhotoHint: hint,
		GPS:       referencePoint,
	}
}
