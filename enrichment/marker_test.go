package enrichment

import "testing"

func TestPick(t *testing.T) {
	cases := []struct {
		name                                                         string
		descriptionCode, aircraftDescription, wakeTurbulenceCategory string
		want                                                         string
	}{
		{"helicopter", "H1P", "H", "L", MarkerHelicopter},
		{"glider", "G1", "G", "L", MarkerGlider},
		{"turboprop by engine code", "L2T", "L", "M", MarkerTurboprop},
		{"heavy jet", "L4J", "L", "H", MarkerJetHeavy},
		{"medium jet", "L2J", "L", "M", MarkerJetMedium},
		{"light jet", "L2J", "L", "L", MarkerJetLight},
		{"unrecognized falls back to generic", "", "", "", MarkerGeneric},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Pick(c.descriptionCode, c.aircraftDescription, c.wakeTurbulenceCategory)
			if got != c.want {
				t.Errorf("Pick(%q,%q,%q) = %q, want %q",
					c.descriptionCode, c.aircraftDescription, c.wakeTurbulenceCategory, got, c.want)
			}
		})
	}
}
