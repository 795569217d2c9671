package walk

import (
	"errors"
	"testing"
)

func TestNewValid(t *testing.T) {
	w, err := New(3, "012", []int{0, 1, 2, 0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if w.Len() != 3 {
		t.Fatalf("got len %d, want 3", w.Len())
	}
	if w.DoorAt(1) != 1 {
		t.Fatalf("got door %d, want 1", w.DoorAt(1))
	}
}

func TestNewRejectsBadDoorDigit(t *testing.T) {
	_, err := New(3, "016", []int{0, 1, 2, 0})
	if !errors.Is(err, ErrInconsistentInput) {
		t.Fatalf("got %v, want ErrInconsistentInput", err)
	}
}

func TestNewRejectsBadLabel(t *testing.T) {
	_, err := New(3, "01", []int{0, 1, 4})
	if !errors.Is(err, ErrInconsistentInput) {
		t.Fatalf("got %v, want ErrInconsistentInput", err)
	}
}

func TestNewRejectsLengthMismatch(t *testing.T) {
	_, err := New(3, "012", []int{0, 1, 2})
	if !errors.Is(err, ErrInconsistentInput) {
		t.Fatalf("got %v, want ErrInconsistentInput", err)
	}
}

func TestNewRejectsBadRoomCount(t *testing.T) {
	_, err := New(0, "", []int{0})
	if !errors.Is(err, ErrInconsistentInput) {
		t.Fatalf("got %v, want ErrInconsistentInput", err)
	}
}
