package aggregate

import "testing"

func TestMergeMonotonicity(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	s.Merge("A12F52", map[string]string{"latitude": "37.1", "longitude": "-122.1"})
	s.Merge("A12F52", map[string]string{"callsign": "SWA123"})
	s.Merge("A12F52", map[string]string{"latitude": "37.2"})

	snap := s.Snapshot("A12F52")
	if snap["latitude"] != "37.2" {
		t.Errorf("latitude = %q, want latest value 37.2", snap["latitude"])
	}
	if snap["longitude"] != "-122.1" {
		t.Errorf("longitude = %q, want the earlier merge's value to survive", snap["longitude"])
	}
	if snap["callsign"] != "SWA123" {
		t.Errorf("callsign = %q, want SWA123", snap["callsign"])
	}
}

func TestMergeExcludesEmptyValues(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	s.Merge("A12F52", map[string]string{"latitude": "37.1", "callsign": ""})
	snap := s.Snapshot("A12F52")
	if _, ok := snap["callsign"]; ok {
		t.Errorf("callsign present with empty value, want excluded entirely")
	}
}

func TestSnapshotOfUnknownHexIsEmpty(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	snap := s.Snapshot("000000")
	if len(snap) != 0 {
		t.Errorf("Snapshot of an unseen hex = %v, want empty", snap)
	}
}
