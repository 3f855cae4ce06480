package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/classtrack/classtrack-back/internal/models"
)

// AddClass assigns an id, appends and persists.
func (s *Store) AddClass(ctx context.Context, email string, c models.Class) (models.Class, error) {
	if c.CourseCode == "" {
		return models.Class{}, &ValidationError{Field: "courseCode", Reason: "must not be empty"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.ensure(ctx, email)
	if err != nil {
		return models.Class{}, err
	}
	c.ID = uuid.NewString()
	c.OwnerEmail = email
	col.classes = append(col.classes, c)
	if s.backend != nil {
		if err := s.backend.SaveClass(ctx, c); err != nil {
			return c, &PersistenceError{Op: "save class", Err: err}
		}
	}
	return c, nil
}

// ClassUpdate is a partial field set for UpdateClass.
type ClassUpdate struct {
	CourseCode  *string `json:"courseCode"`
	CourseTitle *string `json:"courseTitle"`
	Instructor  *string `json:"instructor"`
	Schedule    *string `json:"schedule"`
	Color       *string `json:"color"`
}

func (s *Store) UpdateClass(ctx context.Context, email, id string, upd ClassUpdate) error {
	if upd.CourseCode != nil && *upd.CourseCode == "" {
		return &ValidationError{Field: "courseCode", Reason: "must not be empty"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.ensure(ctx, email)
	if err != nil {
		return err
	}
	c, ok := col.findClass(id)
	if !ok {
		return &NotFoundError{Kind: "class", ID: id}
	}
	if upd.CourseCode != nil {
		c.CourseCode = *upd.CourseCode
	}
	if upd.CourseTitle != nil {
		c.CourseTitle = *upd.CourseTitle
	}
	if upd.Instructor != nil {
		c.Instructor = *upd.Instructor
	}
	if upd.Schedule != nil {
		c.Schedule = *upd.Schedule
	}
	if upd.Color != nil {
		c.Color = *upd.Color
	}
	if s.backend != nil {
		if err := s.backend.SaveClass(ctx, *c); err != nil {
			return &PersistenceError{Op: "save class", Err: err}
		}
	}
	return nil
}

// DeleteClass removes the class and orphans its assignments: they keep
// their classId and keep showing up in the masterlist. The orphan count
// is returned so callers can offer an explicit cleanup.
func (s *Store) DeleteClass(ctx context.Context, email, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.ensure(ctx, email)
	if err != nil {
		return 0, err
	}
	for i := range col.classes {
		if col.classes[i].ID != id {
			continue
		}
		col.classes = append(col.classes[:i], col.classes[i+1:]...)
		orphans := 0
		for j := range col.assignments {
			if col.assignments[j].ClassID == id {
				orphans++
			}
		}
		if s.backend != nil {
			if err := s.backend.DeleteClass(ctx, email, id); err != nil {
				return orphans, &PersistenceError{Op: "delete class", Err: err}
			}
		}
		return orphans, nil
	}
	return 0, &NotFoundError{Kind: "class", ID: id}
}

// ClassByCourseCode is a presentation convenience; the canonical join
// key between assignments and classes is the class id.
func (s *Store) ClassByCourseCode(ctx context.Context, email, code string) (models.Class, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.ensure(ctx, email)
	if err != nil {
		return models.Class{}, false, err
	}
	for _, c := range col.classes {
		if c.CourseCode == code {
			return c, true, nil
		}
	}
	return models.Class{}, false, nil
}
