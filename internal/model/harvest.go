package model

import (
	"fmt"
	"time"
)

// DefaultUnit is used when a harvest form leaves the unit blank.
const DefaultUnit = "kg"

// GPS is a latitude/longitude pair in decimal degrees.
type GPS struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// String renders the pair the way the location field shows it.
func (g GPS) String() string {
	return fmt.Sprintf("%.4f, %.4f", g.Lat, g.Lon)
}

// Harvest is one logged harvest. HerbName doubles as a translation key.
type Harvest struct {
	ID        string    `json:"id"`
	HerbName  string    `json:"herbName"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	Date      time.Time `json:"date"`
	PhotoURL  string    `json:"photoUrl"`  // remote URL for seed data, data URI for submissions
	PhotoHint string    `json:"photoHint"`
	GPS       GPS       `json:"gps"`
}

// Farmer is the single profile the service acts for.
type Farmer struct {
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	RewardsBalance int    `json:"rewardsBalance"`
}
