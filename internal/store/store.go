// Package store owns the authoritative in-memory assignment and class
// collections, one pair per user. Every mutation that touches the dual
// completion flags or the to-do membership goes through here so the
// reconciliation rules live in exactly one place.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/classtrack/classtrack-back/internal/derive"
	"github.com/classtrack/classtrack-back/internal/models"
)

// Backend is the optional persistent mirror behind the store. Writes
// are propagated per mutation; loads replace the whole collection.
type Backend interface {
	LoadAssignments(ctx context.Context, email string) ([]models.Assignment, error)
	LoadClasses(ctx context.Context, email string) ([]models.Class, error)
	SaveAssignment(ctx context.Context, a models.Assignment) error
	DeleteAssignment(ctx context.Context, email, id string) error
	SaveClass(ctx context.Context, c models.Class) error
	DeleteClass(ctx context.Context, email, id string) error
}

type collection struct {
	assignments []models.Assignment
	classes     []models.Class
	loaded      bool
}

// Store serializes all mutations behind one mutex; reads hand out
// snapshot copies.
type Store struct {
	mu      sync.Mutex
	users   map[string]*collection
	backend Backend // nil in memory-only mode
}

func New(backend Backend) *Store {
	return &Store{
		users:   make(map[string]*collection),
		backend: backend,
	}
}

// ensure returns the user's collection, loading it from the backend the
// first time. Caller holds s.mu.
func (s *Store) ensure(ctx context.Context, email string) (*collection, error) {
	col, ok := s.users[email]
	if !ok {
		col = &collection{}
		s.users[email] = col
	}
	if col.loaded || s.backend == nil {
		col.loaded = true
		return col, nil
	}
	assignments, err := s.backend.LoadAssignments(ctx, email)
	if err != nil {
		return nil, &PersistenceError{Op: "load assignments", Err: err}
	}
	classes, err := s.backend.LoadClasses(ctx, email)
	if err != nil {
		return nil, &PersistenceError{Op: "load classes", Err: err}
	}
	col.assignments = assignments
	col.classes = classes
	col.loaded = true
	return col, nil
}

// Reload discards the user's in-memory collections and re-fetches them
// from the backend. Change notifications from the backend should call
// this rather than patch incrementally; the last full reload wins.
func (s *Store) Reload(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, email)
	_, err := s.ensure(ctx, email)
	return err
}

// Assignments returns a snapshot of the user's assignments in
// collection order.
func (s *Store) Assignments(ctx context.Context, email string) ([]models.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.ensure(ctx, email)
	if err != nil {
		return nil, err
	}
	out := make([]models.Assignment, len(col.assignments))
	copy(out, col.assignments)
	return out, nil
}

// Classes returns a snapshot of the user's classes.
func (s *Store) Classes(ctx context.Context, email string) ([]models.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.ensure(ctx, email)
	if err != nil {
		return nil, err
	}
	out := make([]models.Class, len(col.classes))
	copy(out, col.classes)
	return out, nil
}

func (col *collection) findAssignment(id string) (*models.Assignment, bool) {
	for i := range col.assignments {
		if col.assignments[i].ID == id {
			return &col.assignments[i], true
		}
	}
	return nil, false
}

func (col *collection) findClass(id string) (*models.Class, bool) {
	for i := range col.classes {
		if col.classes[i].ID == id {
			return &col.classes[i], true
		}
	}
	return nil, false
}

func (s *Store) persistAssignment(ctx context.Context, a models.Assignment) error {
	if s.backend == nil {
		return nil
	}
	if err := s.backend.SaveAssignment(ctx, a); err != nil {
		return &PersistenceError{Op: "save assignment", Err: err}
	}
	return nil
}

// AddAssignment validates, assigns an id, appends and persists. The
// returned assignment carries the generated id.
func (s *Store) AddAssignment(ctx context.Context, email string, a models.Assignment) (models.Assignment, error) {
	if a.Title == "" {
		return models.Assignment{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if a.DueDate == "" {
		return models.Assignment{}, &ValidationError{Field: "dueDate", Reason: "must not be empty"}
	}
	if _, err := derive.ParseDueDate(a.DueDate); err != nil {
		return models.Assignment{}, &ValidationError{Field: "dueDate", Reason: "expected YYYY-MM-DD"}
	}
	if a.Status == "" {
		a.Status = models.StatusUnset
	}
	if !a.Status.Valid() {
		return models.Assignment{}, &ValidationError{Field: "status", Reason: "unknown value"}
	}
	if a.Type != "" && !a.Type.Valid() {
		return models.Assignment{}, &ValidationError{Field: "type", Reason: "unknown value"}
	}
	if a.Priority != "" && !a.Priority.Valid() {
		return models.Assignment{}, &ValidationError{Field: "priority", Reason: "unknown value"}
	}
	if a.ToDoPriority != "" && !a.ToDoPriority.Valid() {
		return models.Assignment{}, &ValidationError{Field: "toDoPriority", Reason: "must be High or Low"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.ensure(ctx, email)
	if err != nil {
		return models.Assignment{}, err
	}
	a.ID = uuid.NewString()
	a.OwnerEmail = email
	col.assignments = append(col.assignments, a)
	return a, s.persistAssignment(ctx, a)
}

// AssignmentUpdate is a partial field set; nil pointers are left alone.
type AssignmentUpdate struct {
	ClassID       *string                `json:"classId"`
	ClassName     *string                `json:"className"`
	Title         *string                `json:"title"`
	Type          *models.AssignmentType `json:"type"`
	DueDate       *string                `json:"dueDate"`
	DueTime       *string                `json:"dueTime"`
	Status        *models.Status         `json:"status"`
	Priority      *models.Priority       `json:"priority"`
	Notes         *string                `json:"notes"`
	Weight        *float64               `json:"weight"`
	Completed     *bool                  `json:"completed"`
	AddedToToDo   *bool                  `json:"addedToToDo"`
	ToDoCompleted *bool                  `json:"toDoCompleted"`
	ToDoPriority  *models.ToDoPriority   `json:"toDoPriority"`
}

func (u *AssignmentUpdate) validate() error {
	if u.Title != nil && *u.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if u.DueDate != nil {
		if _, err := derive.ParseDueDate(*u.DueDate); err != nil {
			return &ValidationError{Field: "dueDate", Reason: "expected YYYY-MM-DD"}
		}
	}
	if u.Status != nil && !u.Status.Valid() {
		return &ValidationError{Field: "status", Reason: "unknown value"}
	}
	if u.Type != nil && !u.Type.Valid() {
		return &ValidationError{Field: "type", Reason: "unknown value"}
	}
	if u.Priority != nil && !u.Priority.Valid() {
		return &ValidationError{Field: "priority", Reason: "unknown value"}
	}
	if u.ToDoPriority != nil && !u.ToDoPriority.Valid() {
		return &ValidationError{Field: "toDoPriority", Reason: "must be High or Low"}
	}
	return nil
}

// UpdateAssignment merges the given fields into an existing record.
// Validation runs before anything is touched, so a rejected update
// leaves the record exactly as it was.
func (s *Store) UpdateAssignment(ctx context.Context, email, id string, upd AssignmentUpdate) error {
	if err := upd.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.ensure(ctx, email)
	if err != nil {
		return err
	}
	a, ok := col.findAssignment(id)
	if !ok {
		return &NotFoundError{Kind: "assignment", ID: id}
	}

	wasOnList := a.AddedToToDo
	if upd.ClassID != nil {
		a.ClassID = *upd.ClassID
	}
	if upd.ClassName != nil {
		a.ClassName = *upd.ClassName
	}
	if upd.Title != nil {
		a.Title = *upd.Title
	}
	if upd.Type != nil {
		a.Type = *upd.Type
	}
	if upd.DueDate != nil {
		a.DueDate = *upd.DueDate
	}
	if upd.DueTime != nil {
		a.DueTime = *upd.DueTime
	}
	if upd.Status != nil {
		a.Status = *upd.Status
	}
	if upd.Priority != nil {
		a.Priority = *upd.Priority
	}
	if upd.Notes != nil {
		a.Notes = *upd.Notes
	}
	if upd.Weight != nil {
		a.Weight = *upd.Weight
	}
	if upd.Completed != nil {
		a.Completed = *upd.Completed
	}
	if upd.AddedToToDo != nil {
		a.AddedToToDo = *upd.AddedToToDo
	}
	if upd.ToDoCompleted != nil {
		a.ToDoCompleted = *upd.ToDoCompleted
	}
	if upd.ToDoPriority != nil {
		a.ToDoPriority = *upd.ToDoPriority
	}
	// Leaving the to-do list clears its task-completion state, however
	// the membership flag got flipped.
	if wasOnList && !a.AddedToToDo {
		a.ToDoCompleted = false
	}
	return s.persistAssignment(ctx, *a)
}

// DeleteAssignment removes a record. Deleting an absent id is an error,
// not a no-op, so double-deletes surface.
func (s *Store) DeleteAssignment(ctx context.Context, email, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.ensure(ctx, email)
	if err != nil {
		return err
	}
	for i := range col.assignments {
		if col.assignments[i].ID == id {
			col.assignments = append(col.assignments[:i], col.assignments[i+1:]...)
			if s.backend != nil {
				if err := s.backend.DeleteAssignment(ctx, email, id); err != nil {
					return &PersistenceError{Op: "delete assignment", Err: err}
				}
			}
			return nil
		}
	}
	return &NotFoundError{Kind: "assignment", ID: id}
}

// SetStatus is the canonical "status drives completed" path: the
// completed flag follows Completed/Submitted.
func (s *Store) SetStatus(ctx context.Context, email, id string, status models.Status) error {
	if !status.Valid() {
		return &ValidationError{Field: "status", Reason: "unknown value"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.ensure(ctx, email)
	if err != nil {
		return err
	}
	a, ok := col.findAssignment(id)
	if !ok {
		return &NotFoundError{Kind: "assignment", ID: id}
	}
	a.Status = status
	a.Completed = status.Done()
	return s.persistAssignment(ctx, *a)
}

// ToggleComplete flips the simple done flag. Unlike SetStatus this is a
// blunt instrument: completing overwrites status with Completed,
// un-completing overwrites it with Not Started.
func (s *Store) ToggleComplete(ctx context.Context, email, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.ensure(ctx, email)
	if err != nil {
		return err
	}
	a, ok := col.findAssignment(id)
	if !ok {
		return &NotFoundError{Kind: "assignment", ID: id}
	}
	a.Completed = !a.Completed
	if a.Completed {
		a.Status = models.StatusCompleted
	} else {
		a.Status = models.StatusNotStarted
	}
	return s.persistAssignment(ctx, *a)
}

// ToggleToDoMembership flips whether the assignment appears on the
// to-do list. Leaving the list resets ToDoCompleted; joining it leaves
// ToDoCompleted at its prior value.
func (s *Store) ToggleToDoMembership(ctx context.Context, email, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.ensure(ctx, email)
	if err != nil {
		return err
	}
	a, ok := col.findAssignment(id)
	if !ok {
		return &NotFoundError{Kind: "assignment", ID: id}
	}
	a.AddedToToDo = !a.AddedToToDo
	if !a.AddedToToDo {
		a.ToDoCompleted = false
	}
	return s.persistAssignment(ctx, *a)
}

// ToggleToDoCompletion flips the task-completion flag only; academic
// status and the completed flag are untouched.
func (s *Store) ToggleToDoCompletion(ctx context.Context, email, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.ensure(ctx, email)
	if err != nil {
		return err
	}
	a, ok := col.findAssignment(id)
	if !ok {
		return &NotFoundError{Kind: "assignment", ID: id}
	}
	a.ToDoCompleted = !a.ToDoCompleted
	return s.persistAssignment(ctx, *a)
}

func (s *Store) SetToDoPriority(ctx context.Context, email, id string, p models.ToDoPriority) error {
	if !p.Valid() {
		return &ValidationError{Field: "toDoPriority", Reason: "must be High or Low"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.ensure(ctx, email)
	if err != nil {
		return err
	}
	a, ok := col.findAssignment(id)
	if !ok {
		return &NotFoundError{Kind: "assignment", ID: id}
	}
	a.ToDoPriority = p
	return s.persistAssignment(ctx, *a)
}

// Sweep re-applies the automatic overdue transition to every loaded
// assignment and persists the ones that changed. Returns how many
// assignments were advanced.
func (s *Store) Sweep(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	advanced := 0
	var firstErr error
	for _, col := range s.users {
		for i := range col.assignments {
			a := &col.assignments[i]
			next := derive.AutoAdvanceStatus(*a, now)
			if next == a.Status {
				continue
			}
			a.Status = next
			advanced++
			if err := s.persistAssignment(ctx, *a); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return advanced, firstErr
}
