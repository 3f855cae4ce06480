package models

type Status string

const (
	// StatusUnset is the placeholder shown before the user picks a real
	// status. It behaves like StatusNotStarted everywhere except display.
	StatusUnset      Status = "Status"
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusSubmitted  Status = "Submitted"
	StatusCompleted  Status = "Completed"
	StatusOverdue    Status = "Overdue"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUnset, StatusNotStarted, StatusInProgress, StatusSubmitted, StatusCompleted, StatusOverdue:
		return true
	}
	return false
}

// Effective resolves the unset placeholder to Not Started so derivation
// logic never has to special-case it.
func (s Status) Effective() Status {
	if s == StatusUnset {
		return StatusNotStarted
	}
	return s
}

// Done reports whether the status counts as completed for class
// summaries and the completed flag.
func (s Status) Done() bool {
	return s == StatusCompleted || s == StatusSubmitted
}

type AssignmentType string

const (
	TypeHomework   AssignmentType = "Homework"
	TypeReading    AssignmentType = "Reading"
	TypeQuiz       AssignmentType = "Quiz"
	TypeProject    AssignmentType = "Project"
	TypeExam       AssignmentType = "Exam"
	TypeCoding     AssignmentType = "Coding"
	TypeRecitation AssignmentType = "Recitation"
	TypeOther      AssignmentType = "Other"
)

func (t AssignmentType) Valid() bool {
	switch t {
	case TypeHomework, TypeReading, TypeQuiz, TypeProject, TypeExam, TypeCoding, TypeRecitation, TypeOther:
		return true
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// ToDoPriority is the restricted priority used only for to-do ordering.
type ToDoPriority string

const (
	ToDoHigh ToDoPriority = "High"
	ToDoLow  ToDoPriority = "Low"
)

func (p ToDoPriority) Valid() bool {
	return p == ToDoHigh || p == ToDoLow
}

type Assignment struct {
	ID         string `gorm:"primaryKey" json:"id"`
	OwnerEmail string `gorm:"column:owner_email;index;not null" json:"-"`

	ClassID   string `gorm:"column:class_id;index" json:"classId"`
	ClassName string `gorm:"column:class_name" json:"className"` // e.g. "CSE 109"

	Title string         `gorm:"not null" json:"title"`
	Type  AssignmentType `gorm:"type:varchar(16)" json:"type"`

	// DueDate is a plain calendar date (YYYY-MM-DD); DueTime is display
	// only and never enters day-delta math.
	DueDate string `gorm:"column:due_date;not null" json:"dueDate"`
	DueTime string `gorm:"column:due_time" json:"dueTime,omitempty"`

	Status   Status   `gorm:"type:varchar(16)" json:"status"`
	Priority Priority `gorm:"type:varchar(8)" json:"priority"`

	Notes  string  `json:"notes,omitempty"`
	Weight float64 `json:"weight,omitempty"`

	Completed bool `json:"completed"`

	AddedToToDo   bool         `gorm:"column:added_to_todo" json:"addedToToDo"`
	ToDoCompleted bool         `gorm:"column:todo_completed" json:"toDoCompleted"`
	ToDoPriority  ToDoPriority `gorm:"column:todo_priority;type:varchar(8)" json:"toDoPriority,omitempty"`
}

// ExtractedAssignment is one row returned by the syllabus parser,
// reviewed by the user before becoming a real Assignment.
type ExtractedAssignment struct {
	Title   string  `json:"title"`
	Type    string  `json:"type"`
	DueDate string  `json:"dueDate"`
	DueTime string  `json:"dueTime,omitempty"`
	Weight  float64 `json:"weight,omitempty"`
	Notes   string  `json:"notes,omitempty"`
}
