package store

import (
	"context"
	"errors"
	"testing"

	"github.com/classtrack/classtrack-back/internal/models"
)

// fakeBackend records writes and can be told to fail them.
type fakeBackend struct {
	assignments map[string]models.Assignment
	failWrites  bool
	loads       int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{assignments: make(map[string]models.Assignment)}
}

var errDown = errors.New("connection refused")

func (f *fakeBackend) LoadAssignments(ctx context.Context, email string) ([]models.Assignment, error) {
	f.loads++
	out := make([]models.Assignment, 0, len(f.assignments))
	for _, a := range f.assignments {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeBackend) LoadClasses(ctx context.Context, email string) ([]models.Class, error) {
	return nil, nil
}

func (f *fakeBackend) SaveAssignment(ctx context.Context, a models.Assignment) error {
	if f.failWrites {
		return errDown
	}
	f.assignments[a.ID] = a
	return nil
}

func (f *fakeBackend) DeleteAssignment(ctx context.Context, email, id string) error {
	if f.failWrites {
		return errDown
	}
	delete(f.assignments, id)
	return nil
}

func (f *fakeBackend) SaveClass(ctx context.Context, c models.Class) error { return nil }

func (f *fakeBackend) DeleteClass(ctx context.Context, email, id string) error { return nil }

func TestMutations_PropagateToBackend(t *testing.T) {
	backend := newFakeBackend()
	s := New(backend)

	created, err := s.AddAssignment(ctx, owner, quiz("Quiz 5", "2025-11-20"))
	if err != nil {
		t.Fatalf("AddAssignment: %v", err)
	}
	if _, ok := backend.assignments[created.ID]; !ok {
		t.Error("add not mirrored to backend")
	}

	if err := s.SetStatus(ctx, owner, created.ID, models.StatusCompleted); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if got := backend.assignments[created.ID]; got.Status != models.StatusCompleted || !got.Completed {
		t.Errorf("backend row not updated: status=%s completed=%v", got.Status, got.Completed)
	}

	if err := s.DeleteAssignment(ctx, owner, created.ID); err != nil {
		t.Fatalf("DeleteAssignment: %v", err)
	}
	if _, ok := backend.assignments[created.ID]; ok {
		t.Error("delete not mirrored to backend")
	}
}

func TestWriteFailure_SurfacesButAppliesOptimistically(t *testing.T) {
	backend := newFakeBackend()
	s := New(backend)
	created, err := s.AddAssignment(ctx, owner, quiz("Quiz 5", "2025-11-20"))
	if err != nil {
		t.Fatal(err)
	}

	backend.failWrites = true
	err = s.SetStatus(ctx, owner, created.ID, models.StatusCompleted)
	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("got %v, want PersistenceError", err)
	}
	if !errors.Is(err, errDown) {
		t.Error("PersistenceError must wrap the backend error")
	}

	// The in-memory change stands; the caller decides whether to Reload.
	if got := get(t, s, created.ID); got.Status != models.StatusCompleted {
		t.Errorf("optimistic apply missing: status=%s", got.Status)
	}
}

func TestReload_ReplacesInMemoryState(t *testing.T) {
	backend := newFakeBackend()
	s := New(backend)
	created, err := s.AddAssignment(ctx, owner, quiz("Quiz 5", "2025-11-20"))
	if err != nil {
		t.Fatal(err)
	}

	// Simulate an external write landing on a stale local copy.
	row := backend.assignments[created.ID]
	row.Status = models.StatusSubmitted
	row.Completed = true
	backend.assignments[created.ID] = row

	if err := s.Reload(ctx, owner); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := get(t, s, created.ID); got.Status != models.StatusSubmitted {
		t.Errorf("reload kept stale status %s", got.Status)
	}
	if backend.loads < 2 {
		t.Errorf("expected a fresh load, got %d loads", backend.loads)
	}
}
