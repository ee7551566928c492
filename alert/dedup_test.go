package alert

import (
	"testing"
	"time"

	"github.com/skywatch-go/skywatch/cache"
)

func TestDedupFiresAtMostOncePerCooldown(t *testing.T) {
	c, err := cache.Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	d := NewDedup(c, time.Minute)

	if !d.Armed("A12F52") {
		t.Fatalf("a hex never alerted should be armed")
	}
	d.Fire("A12F52")
	if d.Armed("A12F52") {
		t.Errorf("hex should not be armed immediately after Fire")
	}
}

func TestDedupDefaultCooldownAppliesWhenZero(t *testing.T) {
	c, err := cache.Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	d := NewDedup(c, 0)
	if d.cooldown != DefaultCooldown {
		t.Errorf("cooldown = %v, want DefaultCooldown", d.cooldown)
	}
}

func TestDedupIsolatesByHex(t *testing.T) {
	c, err := cache.Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	d := NewDedup(c, time.Minute)
	d.Fire("A12F52")
	if !d.Armed("DEADBE") {
		t.Errorf("firing one hex should not disarm another")
	}
}
