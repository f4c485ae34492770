package dto

import "github.com/yigit/eventsphere/internal/app/models"

// SubjectTeachersRequest lists teachers to link to or unlink from a subject
type SubjectTeachersRequest struct {
	TeacherIDs []int64 `json:"teacherIds" binding:"required,min=1,dive,gt=0"`
}

// TeacherAddInput is the payload of the teacherAdd mutation
type TeacherAddInput struct {
	Name   string        `validate:"required,min=5"`
	Age    int           `validate:"min=18"`
	Gender models.Gender `validate:"gender"`
}

// TeacherEditInput is the payload of the teacherEdit mutation; nil fields are kept
type TeacherEditInput struct {
	Name   *string        `validate:"omitempty,min=5"`
	Age    *int           `validate:"omitempty,min=18"`
	Gender *models.Gender `validate:"omitempty,gender"`
}

// SubjectAddInput is the payload of the subjectAdd mutation
type SubjectAddInput struct {
	Name       string  `validate:"required,min=2"`
	TeacherIDs []int64 `validate:"dive,gt=0"`
}

// EntityWithID is returned by delete mutations
type EntityWithID struct {
	ID int64 `json:"id"`
}
