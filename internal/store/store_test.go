package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/classtrack/classtrack-back/internal/models"
)

const owner = "student@example.com"

var ctx = context.Background()

// seed populates a memory-only store with the given assignments and
// returns the assigned ids in order.
func seed(t *testing.T, s *Store, assignments ...models.Assignment) []string {
	t.Helper()
	ids := make([]string, 0, len(assignments))
	for _, a := range assignments {
		created, err := s.AddAssignment(ctx, owner, a)
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		ids = append(ids, created.ID)
	}
	return ids
}

func get(t *testing.T, s *Store, id string) models.Assignment {
	t.Helper()
	all, err := s.Assignments(ctx, owner)
	if err != nil {
		t.Fatalf("Assignments: %v", err)
	}
	for _, a := range all {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("assignment %s not found", id)
	return models.Assignment{}
}

func quiz(title, dueDate string) models.Assignment {
	return models.Assignment{
		Title:     title,
		ClassName: "CSE 262",
		Type:      models.TypeQuiz,
		DueDate:   dueDate,
		Status:    models.StatusNotStarted,
		Priority:  models.PriorityHigh,
	}
}

func TestAddAssignment_RequiresTitleAndDueDate(t *testing.T) {
	s := New(nil)

	var ve *ValidationError
	if _, err := s.AddAssignment(ctx, owner, models.Assignment{DueDate: "2025-11-20"}); !errors.As(err, &ve) {
		t.Errorf("empty title: got %v, want ValidationError", err)
	}
	if _, err := s.AddAssignment(ctx, owner, models.Assignment{Title: "Quiz 5"}); !errors.As(err, &ve) {
		t.Errorf("empty dueDate: got %v, want ValidationError", err)
	}
	if _, err := s.AddAssignment(ctx, owner, models.Assignment{Title: "Quiz 5", DueDate: "13/11/2025"}); !errors.As(err, &ve) {
		t.Errorf("malformed dueDate: got %v, want ValidationError", err)
	}
}

func TestAddAssignment_DefaultsToUnsetStatus(t *testing.T) {
	s := New(nil)
	created, err := s.AddAssignment(ctx, owner, models.Assignment{Title: "Quiz 5", DueDate: "2025-11-20"})
	if err != nil {
		t.Fatalf("AddAssignment: %v", err)
	}
	if created.Status != models.StatusUnset {
		t.Errorf("default status: got %s, want the unset sentinel", created.Status)
	}
	if created.ID == "" {
		t.Error("expected a generated id")
	}
}

func TestAddAssignment_RejectsUnknownEnumValues(t *testing.T) {
	s := New(nil)
	a := quiz("Quiz 5", "2025-11-20")
	a.Type = "Essay"
	var ve *ValidationError
	if _, err := s.AddAssignment(ctx, owner, a); !errors.As(err, &ve) {
		t.Errorf("unknown type: got %v, want ValidationError", err)
	}
}

func TestUpdateAssignment_UnknownIDIsNotFound(t *testing.T) {
	s := New(nil)
	seed(t, s, quiz("Quiz 5", "2025-11-20"))

	title := "renamed"
	err := s.UpdateAssignment(ctx, owner, "missing", AssignmentUpdate{Title: &title})
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Errorf("got %v, want NotFoundError", err)
	}
}

func TestUpdateAssignment_InvalidEnumLeavesRecordUntouched(t *testing.T) {
	s := New(nil)
	ids := seed(t, s, quiz("Quiz 5", "2025-11-20"))

	title := "renamed"
	bad := models.Status("Done-ish")
	err := s.UpdateAssignment(ctx, owner, ids[0], AssignmentUpdate{Title: &title, Status: &bad})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	a := get(t, s, ids[0])
	if a.Title != "Quiz 5" || a.Status != models.StatusNotStarted {
		t.Errorf("rejected update partially applied: title=%q status=%s", a.Title, a.Status)
	}
}

func TestUpdateAssignment_MergesOnlyProvidedFields(t *testing.T) {
	s := New(nil)
	ids := seed(t, s, quiz("Quiz 5", "2025-11-20"))

	notes := "chapters 4-6"
	status := models.StatusInProgress
	if err := s.UpdateAssignment(ctx, owner, ids[0], AssignmentUpdate{Notes: &notes, Status: &status}); err != nil {
		t.Fatalf("UpdateAssignment: %v", err)
	}
	a := get(t, s, ids[0])
	if a.Notes != notes || a.Status != status {
		t.Errorf("update not applied: notes=%q status=%s", a.Notes, a.Status)
	}
	if a.Title != "Quiz 5" || a.DueDate != "2025-11-20" {
		t.Errorf("untouched fields changed: title=%q dueDate=%s", a.Title, a.DueDate)
	}
}

func TestDeleteAssignment_DoubleDeleteIsAnError(t *testing.T) {
	s := New(nil)
	ids := seed(t, s, quiz("Quiz 5", "2025-11-20"), quiz("Quiz 6", "2025-11-27"))

	if err := s.DeleteAssignment(ctx, owner, ids[0]); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	err := s.DeleteAssignment(ctx, owner, ids[0])
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Errorf("double delete: got %v, want NotFoundError", err)
	}
	all, _ := s.Assignments(ctx, owner)
	if len(all) != 1 {
		t.Errorf("collection changed by failed delete: %d assignments left", len(all))
	}
}

func TestSetStatus_DrivesCompletedFlag(t *testing.T) {
	s := New(nil)
	ids := seed(t, s, quiz("Quiz 5", "2025-11-20"))

	for _, tc := range []struct {
		status models.Status
		done   bool
	}{
		{models.StatusCompleted, true},
		{models.StatusNotStarted, false},
		{models.StatusSubmitted, true},
		{models.StatusInProgress, false},
		{models.StatusUnset, false},
	} {
		if err := s.SetStatus(ctx, owner, ids[0], tc.status); err != nil {
			t.Fatalf("SetStatus(%s): %v", tc.status, err)
		}
		a := get(t, s, ids[0])
		if a.Completed != tc.done {
			t.Errorf("SetStatus(%s): completed=%v, want %v", tc.status, a.Completed, tc.done)
		}
	}
}

func TestSetStatus_RejectsUnknownValue(t *testing.T) {
	s := New(nil)
	ids := seed(t, s, quiz("Quiz 5", "2025-11-20"))
	var ve *ValidationError
	if err := s.SetStatus(ctx, owner, ids[0], "Finished"); !errors.As(err, &ve) {
		t.Errorf("got %v, want ValidationError", err)
	}
}

func TestToggleComplete_OverwritesStatusBothWays(t *testing.T) {
	s := New(nil)
	ids := seed(t, s, quiz("Quiz 5", "2025-11-20"))

	if err := s.SetStatus(ctx, owner, ids[0], models.StatusInProgress); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleComplete(ctx, owner, ids[0]); err != nil {
		t.Fatal(err)
	}
	a := get(t, s, ids[0])
	if !a.Completed || a.Status != models.StatusCompleted {
		t.Errorf("toggle on: completed=%v status=%s", a.Completed, a.Status)
	}

	// Toggling back does not restore In Progress; the simple toggle is
	// a blunt instrument.
	if err := s.ToggleComplete(ctx, owner, ids[0]); err != nil {
		t.Fatal(err)
	}
	a = get(t, s, ids[0])
	if a.Completed || a.Status != models.StatusNotStarted {
		t.Errorf("toggle off: completed=%v status=%s, want false/Not Started", a.Completed, a.Status)
	}
}

func TestToggleToDoMembership_LeavingResetsCompletion(t *testing.T) {
	s := New(nil)
	ids := seed(t, s, quiz("Quiz 5", "2025-11-20"))

	if err := s.ToggleToDoMembership(ctx, owner, ids[0]); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleToDoCompletion(ctx, owner, ids[0]); err != nil {
		t.Fatal(err)
	}
	a := get(t, s, ids[0])
	if !a.AddedToToDo || !a.ToDoCompleted {
		t.Fatalf("setup failed: addedToToDo=%v toDoCompleted=%v", a.AddedToToDo, a.ToDoCompleted)
	}

	if err := s.ToggleToDoMembership(ctx, owner, ids[0]); err != nil {
		t.Fatal(err)
	}
	a = get(t, s, ids[0])
	if a.AddedToToDo {
		t.Error("still on the to-do list after toggling off")
	}
	if a.ToDoCompleted {
		t.Error("leaving the list must reset toDoCompleted")
	}

	// Re-joining does not force toDoCompleted either way.
	if err := s.ToggleToDoMembership(ctx, owner, ids[0]); err != nil {
		t.Fatal(err)
	}
	a = get(t, s, ids[0])
	if !a.AddedToToDo || a.ToDoCompleted {
		t.Errorf("re-join: addedToToDo=%v toDoCompleted=%v", a.AddedToToDo, a.ToDoCompleted)
	}
}

func TestUpdateAssignment_MembershipFlagHonorsResetInvariant(t *testing.T) {
	s := New(nil)
	ids := seed(t, s, quiz("Quiz 5", "2025-11-20"))

	on := true
	if err := s.UpdateAssignment(ctx, owner, ids[0], AssignmentUpdate{AddedToToDo: &on, ToDoCompleted: &on}); err != nil {
		t.Fatal(err)
	}
	off := false
	if err := s.UpdateAssignment(ctx, owner, ids[0], AssignmentUpdate{AddedToToDo: &off}); err != nil {
		t.Fatal(err)
	}
	a := get(t, s, ids[0])
	if a.ToDoCompleted {
		t.Error("reset invariant must also hold for field-level updates")
	}
}

func TestToggleToDoCompletion_LeavesStatusAlone(t *testing.T) {
	s := New(nil)
	ids := seed(t, s, quiz("Quiz 5", "2025-11-20"))

	if err := s.ToggleToDoMembership(ctx, owner, ids[0]); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleToDoCompletion(ctx, owner, ids[0]); err != nil {
		t.Fatal(err)
	}
	a := get(t, s, ids[0])
	if a.Status != models.StatusNotStarted || a.Completed {
		t.Errorf("to-do completion leaked into status: status=%s completed=%v", a.Status, a.Completed)
	}
}

func TestSetToDoPriority_RestrictedToHighLow(t *testing.T) {
	s := New(nil)
	ids := seed(t, s, quiz("Quiz 5", "2025-11-20"))

	if err := s.SetToDoPriority(ctx, owner, ids[0], models.ToDoHigh); err != nil {
		t.Fatalf("High: %v", err)
	}
	var ve *ValidationError
	if err := s.SetToDoPriority(ctx, owner, ids[0], "Medium"); !errors.As(err, &ve) {
		t.Errorf("Medium: got %v, want ValidationError", err)
	}
}

func TestSweep_AdvancesPastDueAndOnlyPastDue(t *testing.T) {
	s := New(nil)
	now := time.Date(2025, 11, 13, 9, 0, 0, 0, time.UTC)

	overdue := quiz("Homework 8", "2025-11-12")
	overdue.Status = models.StatusInProgress
	done := quiz("Homework 1", "2025-11-01")
	done.Status = models.StatusSubmitted
	future := quiz("Project 2", "2025-11-25")

	ids := seed(t, s, overdue, done, future)

	advanced, err := s.Sweep(ctx, now)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if advanced != 1 {
		t.Errorf("advanced %d assignments, want 1", advanced)
	}

	a := get(t, s, ids[0])
	if a.Status != models.StatusOverdue {
		t.Errorf("past-due assignment: status=%s, want Overdue", a.Status)
	}
	if a.Completed {
		t.Error("sweep must not touch the completed flag")
	}
	if got := get(t, s, ids[1]).Status; got != models.StatusSubmitted {
		t.Errorf("submitted assignment changed to %s", got)
	}
	if got := get(t, s, ids[2]).Status; got != models.StatusNotStarted {
		t.Errorf("future assignment changed to %s", got)
	}

	// Running the sweep again is a no-op.
	advanced, err = s.Sweep(ctx, now)
	if err != nil {
		t.Fatalf("second Sweep: %v", err)
	}
	if advanced != 0 {
		t.Errorf("second sweep advanced %d assignments, want 0", advanced)
	}
}

func TestSweep_EmptyStoreIsANoOp(t *testing.T) {
	s := New(nil)
	advanced, err := s.Sweep(ctx, time.Now())
	if err != nil || advanced != 0 {
		t.Errorf("empty sweep: advanced=%d err=%v", advanced, err)
	}
}
