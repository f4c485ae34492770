package models

// Teacher represents a teacher of the school
type Teacher struct {
	ID       int64     `json:"id" db:"id"`
	Name     string    `json:"name" db:"name"`
	Age      int       `json:"age" db:"age"`
	Gender   Gender    `json:"gender" db:"gender"`
	Subjects []Subject `json:"subjects,omitempty"` // Relation, no db tag
}

// TeacherPatch carries the optional fields of a teacher update
type TeacherPatch struct {
	Name   *string
	Age    *int
	Gender *Gender
}

// Subject represents a subject taught at the school
type Subject struct {
	ID       int64     `json:"id" db:"id"`
	Name     string    `json:"name" db:"name"`
	Teachers []Teacher `json:"teachers,omitempty"` // Relation, no db tag
}
