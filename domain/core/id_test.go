package core

import (
	"errors"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDString tests ID string conversion
func TestIDString(t *testing.T) {
	id := ID("test-123")
	if id.String() != "test-123" {
		t.Errorf("Expected String() to return 'test-123', got '%s'", id.String())
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

func TestParseID(t *testing.T) {
	id := NewID()

	parsed, err := ParseID("  " + id.String() + " ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != id {
		t.Errorf("Expected %s, got %s", id, parsed)
	}

	for _, bad := range []string{"", "   ", "not-a-uuid"} {
		if _, err := ParseID(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestNotFoundErrors(t *testing.T) {
	err := NewNotFoundError("dataset", "abc")
	if !IsNotFoundError(err) {
		t.Errorf("Expected %v to be a not-found error", err)
	}
	if !IsNotFoundError(ErrDatasetNotFound) {
		t.Error("Expected ErrDatasetNotFound to wrap ErrNotFound")
	}
	if IsNotFoundError(errors.New("boom")) {
		t.Error("Unrelated error reported as not-found")
	}
	if !IsUploadError(ErrNoDataRows) || IsUploadError(ErrNotFound) {
		t.Error("IsUploadError misclassified errors")
	}
}
