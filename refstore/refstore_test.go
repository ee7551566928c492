package refstore

import "testing"

func TestOpenWithEmptyPathAlwaysMisses(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if _, ok := s.Airplane("A12F52"); ok {
		t.Errorf("Airplane lookup on an unopened store should miss")
	}
	if _, ok := s.Airline("AA"); ok {
		t.Errorf("Airline lookup on an unopened store should miss")
	}
	if _, ok := s.Country("US"); ok {
		t.Errorf("Country lookup on an unopened store should miss")
	}
	if _, ok := s.ICAOType("B738"); ok {
		t.Errorf("ICAOType lookup on an unopened store should miss")
	}
}

func TestOpenWithMissingFileDegradesToMiss(t *testing.T) {
	s, err := Open("/nonexistent/path/reference.duckdb")
	if err != nil {
		t.Fatalf("Open should not fail startup for a missing reference file: %v", err)
	}
	defer s.Close()

	if _, ok := s.Airplane("A12F52"); ok {
		t.Errorf("Airplane lookup against a missing file should miss, not error")
	}
}
