package events

import "testing"

func TestAppend_VersionsPerStream(t *testing.T) {
	log := NewLog()

	first := log.Append(DatasetDemand, KindReplaced, 3)
	second := log.Append(DatasetDemand, KindReplaced, 5)
	other := log.Append(DatasetInventory, KindReplaced, 2)

	if first.Version != 1 || second.Version != 2 {
		t.Errorf("Expected demand versions 1, 2; got %d, %d", first.Version, second.Version)
	}
	if other.Version != 1 {
		t.Errorf("Streams version independently; inventory should be 1, got %d", other.Version)
	}
	if first.Token == second.Token {
		t.Error("Every append must mint a fresh token")
	}
}

func TestToken_TracksLatestAppend(t *testing.T) {
	log := NewLog()

	if tok := log.Token(DatasetDemand); tok != "" {
		t.Errorf("Untouched dataset should have empty token, got %q", tok)
	}

	ev := log.Append(DatasetDemand, KindReplaced, 1)
	if log.Token(DatasetDemand) != ev.Token {
		t.Error("Token should match the latest event")
	}

	cleared := log.Append(DatasetDemand, KindCleared, 0)
	if log.Token(DatasetDemand) != cleared.Token {
		t.Error("Clearing should also move the token")
	}
}

func TestEvents_FromVersion(t *testing.T) {
	log := NewLog()
	for i := 0; i < 3; i++ {
		log.Append(DatasetSuppliers, KindReplaced, i)
	}

	tail := log.Events(DatasetSuppliers, 2)
	if len(tail) != 2 {
		t.Fatalf("Expected 2 events from version 2, got %d", len(tail))
	}
	if tail[0].Version != 2 {
		t.Errorf("Expected first returned version 2, got %d", tail[0].Version)
	}
	if got := log.Events(DatasetSuppliers, 9); got != nil {
		t.Errorf("Past-end version should return nil, got %v", got)
	}
	if all := log.All(); len(all) != 3 {
		t.Errorf("Expected 3 total events, got %d", len(all))
	}
}
