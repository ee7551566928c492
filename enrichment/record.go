// Package enrichment composes the reference-store adapter and the HTTP
// enricher clients into a single structured enrichment record for a
// snapshot.
package enrichment

import "github.com/skywatch-go/skywatch/enrich"

// Airplane is the projection of an airplanes row (or its hexdb
// fallback, key-remapped to the same field names).
type Airplane struct {
	ICAOCodeHex        string
	RegistrationNumber string
	IATACodeLong       string // aircraft type, e.g. "B733"
	IATAType           string
	PlaneOwner         string
	AirlineIATACode    string
}

// Airline is the projection of an active airlines row.
type Airline struct {
	IATACode    string
	ICAOCode    string
	AirlineName string
	CountryISO2 string
}

// Country is the projection of a countries row.
type Country struct {
	CountryISO2 string
	CountryName string
}

// ICAOType is the projection of an icao_doc8643_2019 row.
type ICAOType struct {
	Designator             string
	DescriptionCode        string
	AircraftDescription    string
	WakeTurbulenceCategory string
}

// Record is the composed enrichment for one snapshot. Every field is a
// pointer so that "absent" is representable without a sentinel value:
// any step that misses simply leaves its field nil, and every
// downstream consumer must treat nil as "not available", not an error.
type Record struct {
	Airplane *Airplane
	Airline  *Airline
	Country  *Country
	Photos   []enrich.Photo
	SVG      string // "" means no marker was resolved
}

func str(m map[string]any, col string) string {
	v, ok := m[col]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func airplaneFromRow(row map[string]any) *Airplane {
	return &Airplane{
		ICAOCodeHex:        str(row, "icao_code_hex"),
		RegistrationNumber: str(row, "registration_number"),
		IATACodeLong:       str(row, "iata_code_long"),
		IATAType:           str(row, "iata_type"),
		PlaneOwner:         str(row, "plane_owner"),
		AirlineIATACode:    str(row, "airline_iata_code"),
	}
}

func airplaneFromHexDB(info enrich.AircraftInfo) *Airplane {
	return &Airplane{
		ICAOCodeHex:        info.ModeS,
		RegistrationNumber: info.Registration,
		IATACodeLong:       info.ICAOTypeCode,
		IATAType:           info.Type,
		PlaneOwner:         info.RegisteredOwners,
	}
}

func airlineFromRow(row map[string]any) *Airline {
	return &Airline{
		IATACode:    str(row, "iata_code"),
		ICAOCode:    str(row, "icao_code"),
		AirlineName: str(row, "airline_name"),
		CountryISO2: str(row, "country_iso2"),
	}
}

func countryFromRow(row map[string]any) *Country {
	return &Country{
		CountryISO2: str(row, "country_iso2"),
		CountryName: str(row, "country_name"),
	}
}

func icaoTypeFromRow(row map[string]any) *ICAOType {
	return &ICAOType{
		Designator:             str(row, "designator"),
		DescriptionCode:        str(row, "description_code"),
		AircraftDescription:    str(row, "aircraft_description"),
		WakeTurbulenceCategory: str(row, "wake_turbulence_category"),
	}
}
