package http

import (
	"testing"
	"time"
)

func TestDedupGuard_Seen(t *testing.T) {
	g := NewDedupGuard(50*time.Millisecond, 10)

	if g.Seen(42) {
		t.Error("first sighting must not be a duplicate")
	}
	if !g.Seen(42) {
		t.Error("second sighting within the TTL must be a duplicate")
	}

	time.Sleep(80 * time.Millisecond)

	if g.Seen(42) {
		t.Error("sighting after the TTL must not be a duplicate")
	}
}

func TestDedupGuard_IndependentIDs(t *testing.T) {
	g := NewDedupGuard(time.Minute, 10)

	if g.Seen(1) {
		t.Error("id 1: first sighting must not be a duplicate")
	}
	if g.Seen(2) {
		t.Error("id 2: first sighting must not be a duplicate")
	}
	if !g.Seen(1) {
		t.Error("id 1: second sighting must be a duplicate")
	}
}
