package shared

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID()

	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected valid UUID, got %q: %v", id, err)
	}

	if id == GenerateID() {
		t.Error("expected distinct IDs")
	}
}

func TestGenerateState(t *testing.T) {
	t.Run("Length And Alphabet", func(t *testing.T) {
		state, err := GenerateState()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(state) != StateLength {
			t.Errorf("expected length %d, got %d", StateLength, len(state))
		}

		for _, c := range state {
			if !strings.ContainsRune(stateAlphabet, c) {
				t.Errorf("unexpected character %q in state %q", c, state)
			}
		}
	})

	t.Run("Distinct Values", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 10 {
			state, err := GenerateState()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if seen[state] {
				t.Fatalf("state %q generated twice", state)
			}
			seen[state] = true
		}
	})
}

func TestNewLogger(t *testing.T) {
	var buf strings.Builder
	logger := NewLogger(&buf)

	logger.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "hello") {
		t.Errorf("expected log output to contain message, got %q", out)
	}
	if !strings.Contains(out, "key") {
		t.Errorf("expected log output to contain key, got %q", out)
	}
}

func TestWithLogger(t *testing.T) {
	var buf strings.Builder
	logger := WithLogger(NewLogger(&buf), "component", "test")

	logger.Info("hello")

	if !strings.Contains(buf.String(), "component") {
		t.Errorf("expected bound key in output, got %q", buf.String())
	}
}
