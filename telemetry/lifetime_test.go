package telemetry

import "testing"

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(1, OriginBurst, 2.0)
	lt.Register(2, OriginSplash, 3.0)
	lt.RecordClustered(1)
	lt.RecordClustered(1)
	lt.RecordClustered(99) // unknown ids are ignored

	if lt.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", lt.Count())
	}

	s := lt.Remove(1, 7.5, RemovedEvicted)
	if s == nil {
		t.Fatal("Remove returned nil for tracked particle")
	}
	if s.Lifetime() != 5.5 {
		t.Errorf("Lifetime() = %v, want 5.5", s.Lifetime())
	}
	if s.Clusterings != 2 || s.Cause != RemovedEvicted || s.Origin != OriginBurst {
		t.Errorf("unexpected stats %+v", s)
	}
	if lt.Remove(1, 8, RemovedExpired) != nil {
		t.Error("second Remove should return nil")
	}

	lt.Clear()
	if lt.Get(2) != nil {
		t.Error("Clear left particle 2 tracked")
	}
}

func TestLifetimeTrackerIDs(t *testing.T) {
	lt := NewLifetimeTracker()
	for _, id := range []uint64{9, 2, 5} {
		lt.Register(id, OriginSplash, 0)
	}
	ids := lt.IDs()
	if len(ids) != 3 || ids[0] != 2 || ids[1] != 5 || ids[2] != 9 {
		t.Errorf("IDs() = %v, want [2 5 9]", ids)
	}
}
