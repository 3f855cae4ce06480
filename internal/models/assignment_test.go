package models

import "testing"

func TestStatusEffective_UnsetReadsAsNotStarted(t *testing.T) {
	if got := StatusUnset.Effective(); got != StatusNotStarted {
		t.Errorf("got %s, want Not Started", got)
	}
	if got := StatusOverdue.Effective(); got != StatusOverdue {
		t.Errorf("real statuses pass through, got %s", got)
	}
}

func TestStatusDone(t *testing.T) {
	for status, want := range map[Status]bool{
		StatusCompleted:  true,
		StatusSubmitted:  true,
		StatusNotStarted: false,
		StatusInProgress: false,
		StatusOverdue:    false,
		StatusUnset:      false,
	} {
		if got := status.Done(); got != want {
			t.Errorf("%s.Done(): got %v, want %v", status, got, want)
		}
	}
}

func TestEnumValidity(t *testing.T) {
	if Status("Finished").Valid() {
		t.Error("unknown status accepted")
	}
	if !StatusUnset.Valid() {
		t.Error("the unset sentinel is a tolerated member")
	}
	if AssignmentType("Essay").Valid() {
		t.Error("unknown type accepted")
	}
	if ToDoPriority("Medium").Valid() {
		t.Error("to-do priority is restricted to High and Low")
	}
	if !Priority("Medium").Valid() {
		t.Error("Medium is a valid general priority")
	}
}
