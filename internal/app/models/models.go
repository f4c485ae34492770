package models

// AttendeeAnswer is a user's reply to an event invitation
type AttendeeAnswer string

const (
	AnswerAccepted AttendeeAnswer = "Accepted"
	AnswerMaybe    AttendeeAnswer = "Maybe"
	AnswerRejected AttendeeAnswer = "Rejected"
)

// AttendeeAnswers lists the answers in declaration order
var AttendeeAnswers = []AttendeeAnswer{AnswerAccepted, AnswerMaybe, AnswerRejected}

// Valid reports whether a is one of the known answers
func (a AttendeeAnswer) Valid() bool {
	switch a {
	case AnswerAccepted, AnswerMaybe, AnswerRejected:
		return true
	}
	return false
}

// Gender of a teacher
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Genders lists the genders in declaration order
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// Valid reports whether g is one of the known genders
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}
