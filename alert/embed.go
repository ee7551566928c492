package alert

import (
	"fmt"

	"github.com/skywatch-go/skywatch/enrichment"
)

// EmbedColor is the fixed accent color used for every alert embed.
const EmbedColor = 0x1abc9c

// EmbedField is one inline key/value row of an alert embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// EmbedImage is the optional image attached to an alert embed.
type EmbedImage struct {
	URL string `json:"url"`
}

// Embed is the structured payload handed to the notifier, shaped per
// the proximity alerter's contract.
type Embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Color       int          `json:"color"`
	Fields      []EmbedField `json:"fields"`
	Image       *EmbedImage  `json:"image,omitempty"`
}

// BuildEmbed assembles the alert embed for hex at distanceKM from home,
// given the snapshot's callsign/altitude/latitude/longitude/ground
// speed and the composed enrichment record.
func BuildEmbed(hex string, distanceKM float64, altitudeFeet string, callsign, latitude, longitude, groundSpeed string, rec enrichment.Record) Embed {
	e := Embed{
		Title:       hex,
		Description: fmt.Sprintf("Detected %.2f km from base at %s ft.", distanceKM, altitudeFeet),
		Color:       EmbedColor,
		Fields: []EmbedField{
			{Name: "Flight Number", Value: callsign, Inline: true},
			{Name: "Registration Number", Value: registrationOf(rec), Inline: true},
			{Name: "Aircraft Type", Value: aircraftTypeOf(rec), Inline: true},
			{Name: "Latitude", Value: latitude, Inline: true},
			{Name: "Longitude", Value: longitude, Inline: true},
			{Name: "Ground Speed", Value: groundSpeed, Inline: true},
			{Name: "Airline Name", Value: airlineNameOf(rec), Inline: true},
			{Name: "Country Name", Value: countryNameOf(rec), Inline: true},
		},
	}

	if len(rec.Photos) > 0 && rec.Photos[0].ThumbnailLarge.Src != "" {
		e.Image = &EmbedImage{URL: rec.Photos[0].ThumbnailLarge.Src}
	}

	return e
}

func registrationOf(rec enrichment.Record) string {
	if rec.Airplane == nil {
		return ""
	}
	return rec.Airplane.RegistrationNumber
}

func aircraftTypeOf(rec enrichment.Record) string {
	if rec.Airplane == nil {
		return ""
	}
	return rec.Airplane.IATACodeLong
}

func airlineNameOf(rec enrichment.Record) string {
	if rec.Airline == nil {
		return ""
	}
	return rec.Airline.AirlineName
}

func countryNameOf(rec enrichment.Record) string {
	if rec.Country == nil {
		return ""
	}
	return rec.Country.CountryName
}
