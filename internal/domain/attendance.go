package domain

import (
	"strings"
	"time"
)

// AttendanceStatus is the attendance outcome for a roster member
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
)

// RosterMember is one expected identity for an attendance session
type RosterMember struct {
	UserID    string `json:"user_id"`
	ClassID   string `json:"class_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FullName joins first and last name, trimming when either is empty
func (m RosterMember) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// AttendanceOutcome is the reconciled result for one roster member.
// For a given session there is exactly one outcome per roster member.
type AttendanceOutcome struct {
	UserID      string           `json:"student_id"`
	StudentName string           `json:"student_name"`
	Status      AttendanceStatus `json:"status"`
	Confidence  float64          `json:"confidence"` // 0.0 for absent
	Detected    bool             `json:"detected"`
}

// AttendanceSession identifies the class session being marked
type AttendanceSession struct {
	ClassID     string `json:"class_id"`
	Subject     string `json:"subject"`
	ClassType   string `json:"class_type"`
	Date        string `json:"date"` // YYYY-MM-DD
	FacultyID   string `json:"faculty_id"`
	FacultyName string `json:"faculty_name,omitempty"`
	Location    string `json:"location,omitempty"`
}

// AttendanceRecord is the persisted attendance row. The upsert key is
// (user_id, date, subject, class_id, marked_by); re-submitting a session
// overwrites status and confidence instead of inserting a duplicate.
type AttendanceRecord struct {
	UserID      string           `json:"user_id"`
	ClassID     string           `json:"class_id"`
	StudentName string           `json:"student_name"`
	Date        string           `json:"date"`
	Subject     string           `json:"subject"`
	ClassType   string           `json:"class_type"`
	Status      AttendanceStatus `json:"status"`
	Confidence  float64          `json:"confidence"`
	MarkedBy    string           `json:"marked_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
