package app

import (
	"testing"
	"time"
)

func TestMissingHexSetSorted(t *testing.T) {
	m := newMissingHexSet(time.Hour)
	m.Add("A12F52")
	m.Add("001122")
	m.Add("FFEEDD")

	got := m.Sorted()
	want := []string{"001122", "A12F52", "FFEEDD"}
	if len(got) != len(want) {
		t.Fatalf("Sorted() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sorted()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMissingHexSetReAddRefreshesWithoutDuplicating(t *testing.T) {
	m := newMissingHexSet(time.Hour)
	m.Add("A12F52")
	m.Add("A12F52")

	got := m.Sorted()
	if len(got) != 1 {
		t.Fatalf("Sorted() = %v, want exactly one entry", got)
	}
}

func TestMissingHexSetExpires(t *testing.T) {
	m := newMissingHexSet(20 * time.Millisecond)
	m.Add("A12F52")

	time.Sleep(100 * time.Millisecond)

	got := m.Sorted()
	if len(got) != 0 {
		t.Errorf("Sorted() = %v, want empty after TTL expiry", got)
	}
}

func TestMissingHexSetZeroTTLDefaults(t *testing.T) {
	m := newMissingHexSet(0)
	m.Add("A12F52")
	if got := m.Sorted(); len(got) != 1 {
		t.Errorf("Sorted() = %v, want [A12F52] with the default TTL applied", got)
	}
}
