package enrichment

import (
	"context"
	"strings"

	"github.com/skywatch-go/skywatch/enrich"
	"github.com/skywatch-go/skywatch/refstore"
)

// MissingHexRecorder records a hex_ident for which no airplane row was
// found in either the reference store or the remote fallback. The
// supervisor's periodic monitor reports its contents.
type MissingHexRecorder interface {
	Add(hex string)
}

// Engine composes the reference store and the HTTP enrichers into a
// Record. Every step is independently failure-tolerant: a miss at any
// step leaves that field nil and does not prevent the remaining steps
// from running.
type Engine struct {
	Ref           *refstore.Store
	HexDB         *enrich.HexDB
	PlaneSpotters *enrich.PlaneSpotters
	Missing       MissingHexRecorder
}

func normalize(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// Compose builds the enrichment record for hexIdent.
func (e *Engine) Compose(ctx context.Context, hexIdent string) Record {
	hex := normalize(hexIdent)

	var rec Record

	if row, ok := e.Ref.Airplane(hex); ok {
		rec.Airplane = airplaneFromRow(row)
	} else if info, ok, _ := e.HexDB.Aircraft(ctx, hex); ok {
		rec.Airplane = airplaneFromHexDB(info)
	} else {
		if e.Missing != nil {
			e.Missing.Add(hex)
		}
	}

	if rec.Airplane != nil && rec.Airplane.AirlineIATACode != "" {
		if row, ok := e.Ref.Airline(normalize(rec.Airplane.AirlineIATACode)); ok {
			rec.Airline = airlineFromRow(row)
		}
	}

	if rec.Airline != nil && rec.Airline.CountryISO2 != "" {
		if row, ok := e.Ref.Country(normalize(rec.Airline.CountryISO2)); ok {
			rec.Country = countryFromRow(row)
		}
	}

	if photos, ok, _ := e.PlaneSpotters.Photos(ctx, hex); ok {
		rec.Photos = photos.Photos
	}

	if rec.Airplane != nil && rec.Airplane.IATACodeLong != "" {
		if row, ok := e.Ref.ICAOType(normalize(rec.Airplane.IATACodeLong)); ok {
			t := icaoTypeFromRow(row)
			rec.SVG = Pick(t.DescriptionCode, t.AircraftDescription, t.WakeTurbulenceCategory)
		}
	}

	return rec
}
