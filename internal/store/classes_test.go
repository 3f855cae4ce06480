package store

import (
	"errors"
	"testing"

	"github.com/classtrack/classtrack-back/internal/models"
)

func cse262() models.Class {
	return models.Class{
		CourseCode:  "CSE 262",
		CourseTitle: "Programming Languages",
		Instructor:  "Dr. Smith",
		Schedule:    "Mon/Wed 10:00 AM",
		Color:       "pastel-lavender",
	}
}

func TestAddClass_AssignsID(t *testing.T) {
	s := New(nil)
	created, err := s.AddClass(ctx, owner, cse262())
	if err != nil {
		t.Fatalf("AddClass: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a generated id")
	}
}

func TestAddClass_RequiresCourseCode(t *testing.T) {
	s := New(nil)
	var ve *ValidationError
	if _, err := s.AddClass(ctx, owner, models.Class{CourseTitle: "Untitled"}); !errors.As(err, &ve) {
		t.Errorf("got %v, want ValidationError", err)
	}
}

func TestUpdateClass_MergesSubset(t *testing.T) {
	s := New(nil)
	created, err := s.AddClass(ctx, owner, cse262())
	if err != nil {
		t.Fatal(err)
	}

	instructor := "Dr. Jones"
	color := "#7C3AED"
	if err := s.UpdateClass(ctx, owner, created.ID, ClassUpdate{Instructor: &instructor, Color: &color}); err != nil {
		t.Fatalf("UpdateClass: %v", err)
	}

	classes, _ := s.Classes(ctx, owner)
	got := classes[0]
	if got.Instructor != instructor || got.Color != color {
		t.Errorf("update not applied: %+v", got)
	}
	if got.CourseCode != "CSE 262" || got.Schedule != "Mon/Wed 10:00 AM" {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestUpdateClass_UnknownIDIsNotFound(t *testing.T) {
	s := New(nil)
	title := "X"
	err := s.UpdateClass(ctx, owner, "missing", ClassUpdate{CourseTitle: &title})
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Errorf("got %v, want NotFoundError", err)
	}
}

func TestDeleteClass_OrphansAssignments(t *testing.T) {
	s := New(nil)
	created, err := s.AddClass(ctx, owner, cse262())
	if err != nil {
		t.Fatal(err)
	}
	a := quiz("Quiz 5", "2025-11-20")
	a.ClassID = created.ID
	seed(t, s, a)

	orphans, err := s.DeleteClass(ctx, owner, created.ID)
	if err != nil {
		t.Fatalf("DeleteClass: %v", err)
	}
	if orphans != 1 {
		t.Errorf("orphans: got %d, want 1", orphans)
	}

	// The assignment survives the class.
	all, _ := s.Assignments(ctx, owner)
	if len(all) != 1 {
		t.Errorf("class delete cascaded: %d assignments left", len(all))
	}
}

func TestDeleteClass_UnknownIDIsNotFound(t *testing.T) {
	s := New(nil)
	_, err := s.DeleteClass(ctx, owner, "missing")
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Errorf("got %v, want NotFoundError", err)
	}
}

func TestClassByCourseCode(t *testing.T) {
	s := New(nil)
	if _, err := s.AddClass(ctx, owner, cse262()); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.ClassByCourseCode(ctx, owner, "CSE 262")
	if err != nil || !ok {
		t.Fatalf("lookup failed: ok=%v err=%v", ok, err)
	}
	if got.CourseTitle != "Programming Languages" {
		t.Errorf("got %+v", got)
	}

	_, ok, err = s.ClassByCourseCode(ctx, owner, "CSE 999")
	if err != nil || ok {
		t.Errorf("unknown code: ok=%v err=%v", ok, err)
	}
}
