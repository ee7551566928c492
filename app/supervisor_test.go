package app

import "testing"

func TestSupervisorAliveReflectsStoredState(t *testing.T) {
	var s Supervisor

	if s.Alive() {
		t.Errorf("Alive() = true before Run starts anything, want false")
	}

	s.alive.Store(true)
	if !s.Alive() {
		t.Errorf("Alive() = false after tasks start, want true")
	}

	s.alive.Store(false)
	if s.Alive() {
		t.Errorf("Alive() = true after a task exits, want false")
	}
}
