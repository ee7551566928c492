// Package sbs parses and represents SBS-1 ("BaseStation") surveillance
// messages: the line-oriented, comma-separated ASCII format emitted by
// common ADS-B decoders.
package sbs

import (
	"strconv"
	"strings"
)

// FieldNames is the declared order of the 22 SBS-1 fields, used as the
// header row of the optional CSV log.
var FieldNames = []string{
	"message_type",
	"transmission_type",
	"session_id",
	"aircraft_id",
	"hex_ident",
	"flight_id",
	"generated_date",
	"generated_time",
	"logged_date",
	"logged_time",
	"callsign",
	"altitude",
	"ground_speed",
	"track",
	"latitude",
	"longitude",
	"vertical_rate",
	"squawk",
	"alert",
	"emergency",
	"spi",
	"is_on_ground",
}

const fieldCount = 22

// Transmission types, as assigned by the SBS-1 format.
const (
	TransmissionESIdentCategory = 1
	TransmissionESSurface       = 2
	TransmissionESAirborne      = 3
	TransmissionESVelocity      = 4
	TransmissionSurveillance    = 5
	TransmissionSurveillanceID  = 6
	TransmissionAirToAir        = 7
	TransmissionAllCall         = 8
)

// Message is a parsed SBS-1 line. Every field except MessageType and
// HexIdent may be empty; an empty field means "not reported in this
// line", never zero or false. Fields are kept as raw strings so that a
// field which never needs interpreting (most of them, most of the time)
// never pays for parsing it.
type Message struct {
	MessageType      string
	TransmissionType string
	SessionID        string
	AircraftID       string
	HexIdent         string
	FlightID         string
	GeneratedDate    string
	GeneratedTime    string
	LoggedDate       string
	LoggedTime       string
	Callsign         string
	Altitude         string
	GroundSpeed      string
	Track            string
	Latitude         string
	Longitude        string
	VerticalRate     string
	Squawk           string
	Alert            string
	Emergency        string
	SPI              string
	IsOnGround       string
}

// ParseLine tokenizes a trimmed SBS-1 line into a Message. It reports ok
// = false for anything that is not a well-formed MSG line: wrong literal
// in the first field, or fewer than the 22 declared fields. Embedded
// commas are not supported by the wire format itself (SBS-1 is a flat
// CSV with no quoting), so a straight split is correct here.
func ParseLine(line string) (Message, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < fieldCount {
		return Message{}, false
	}
	if fields[0] != "MSG" {
		return Message{}, false
	}
	return Message{
		MessageType:      fields[0],
		TransmissionType: fields[1],
		SessionID:        fields[2],
		AircraftID:       fields[3],
		HexIdent:         strings.ToUpper(fields[4]),
		FlightID:         fields[5],
		GeneratedDate:    fields[6],
		GeneratedTime:    fields[7],
		LoggedDate:       fields[8],
		LoggedTime:       fields[9],
		Callsign:         strings.TrimSpace(fields[10]),
		Altitude:         fields[11],
		GroundSpeed:      fields[12],
		Track:            fields[13],
		Latitude:         fields[14],
		Longitude:        fields[15],
		VerticalRate:     fields[16],
		Squawk:           fields[17],
		Alert:            fields[18],
		Emergency:        fields[19],
		SPI:              fields[20],
		IsOnGround:       fields[21],
	}, true
}

// Fields returns the 22 values in FieldNames order, for the CSV log.
func (m Message) Fields() []string {
	return []string{
		m.MessageType, m.TransmissionType, m.SessionID, m.AircraftID,
		m.HexIdent, m.FlightID, m.GeneratedDate, m.GeneratedTime,
		m.LoggedDate, m.LoggedTime, m.Callsign, m.Altitude,
		m.GroundSpeed, m.Track, m.Latitude, m.Longitude,
		m.VerticalRate, m.Squawk, m.Alert, m.Emergency, m.SPI, m.IsOnGround,
	}
}

// AsMap returns the non-empty fields as field-name -> value, the shape
// the aggregator merges. Empty fields are never included.
func (m Message) AsMap() map[string]string {
	out := make(map[string]string, fieldCount)
	names := FieldNames
	values := m.Fields()
	for i, v := range values {
		if v == "" {
			continue
		}
		out[names[i]] = v
	}
	return out
}

// LatLon returns the parsed latitude/longitude and whether both fields
// were present and numeric.
func (m Message) LatLon() (lat, lon float64, ok bool) {
	if m.Latitude == "" || m.Longitude == "" {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(m.Latitude, 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(m.Longitude, 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// AltitudeFeet returns the parsed altitude and whether it was present
// and numeric.
func (m Message) AltitudeFeet() (int, bool) {
	if m.Altitude == "" {
		return 0, false
	}
	v, err := strconv.Atoi(m.Altitude)
	if err != nil {
		return 0, false
	}
	return v, true
}
