package enrichment

import "strings"

// Marker identifiers returned by Pick. These name a small fixed set of
// pre-rendered SVG assets; Pick never returns anything outside this
// set.
const (
	MarkerJetHeavy   = "jet-heavy"
	MarkerJetMedium  = "jet-medium"
	MarkerJetLight   = "jet-light"
	MarkerTurboprop  = "turboprop"
	MarkerHelicopter = "helicopter"
	MarkerGlider     = "glider"
	MarkerGeneric    = "generic"
)

// Pick deterministically selects a marker for an ICAO doc8643 row.
// aircraftDescription follows the doc8643 convention ("H" = helicopter,
// "G" = glider/sailplane, "L"/"S"/"A" = fixed-wing land/sea/amphibian);
// wakeTurbulenceCategory is one of "H", "M", "L" (heavy/medium/light).
// Pick never errors: an unrecognized combination falls back to
// MarkerGeneric.
func Pick(descriptionCode, aircraftDescription, wakeTurbulenceCategory string) string {
	desc := strings.ToUpper(strings.TrimSpace(aircraftDescription))
	wtc := strings.ToUpper(strings.TrimSpace(wakeTurbulenceCategory))

	switch desc {
	case "H":
		return MarkerHelicopter
	case "G":
		return MarkerGlider
	}

	// Turboprops are flagged in the description_code's engine-type
	// character ("T") rather than in the wake category.
	if dc := strings.ToUpper(strings.TrimSpace(descriptionCode)); strings.Contains(dc, "T") {
		return MarkerTurboprop
	}

	switch wtc {
	case "H":
		return MarkerJetHeavy
	case "M":
		return MarkerJetMedium
	case "L":
		return MarkerJetLight
	}

	return MarkerGeneric
}
