package domain

import "strings"

// Status is the lifecycle state of an application.
type Status string

const (
	StatusApplied     Status = "applied"
	StatusPhoneScreen Status = "phone_screen"
	StatusInterview   Status = "interview"
	StatusOffer       Status = "offer"
	StatusRejected    Status = "rejected"
	StatusWithdrawn   Status = "withdrawn"
)

// Statuses lists every valid application status in pipeline order.
var Statuses = []Status{
	StatusApplied,
	StatusPhoneScreen,
	StatusInterview,
	StatusOffer,
	StatusRejected,
	StatusWithdrawn,
}

// ParseStatus matches s case-insensitively against Statuses and returns the
// canonical lowercase value.
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(s)
	for _, st := range Statuses {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}

// Ptr returns a pointer to a copy of s, for nullable status columns.
func (s Status) Ptr() *Status { return &s }

// EventType classifies an Activity row. Only EventCreated and
// EventStatusChange are produced today; the others are reserved.
type EventType string

const (
	EventCreated            EventType = "created"
	EventStatusChange       EventType = "status_change"
	EventNoteAdded          EventType = "note_added"
	EventInterviewScheduled EventType = "interview_scheduled"
	EventFollowupSet        EventType = "followup_set"
)

// Fixed activity details written by the auto-logging paths.
const (
	DetailsCreated       = "Application created"
	DetailsStatusChanged = "Status updated via console"
)

// EmploymentType is the contract shape of a job.
type EmploymentType string

const (
	EmploymentInternship EmploymentType = "internship"
	EmploymentFullTime   EmploymentType = "full_time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentPartTime   EmploymentType = "part_time"
)

var employmentTypes = []EmploymentType{EmploymentInternship, EmploymentFullTime, EmploymentContract, EmploymentPartTime}

// ParseEmploymentType matches s case-insensitively; see ParseStatus.
func ParseEmploymentType(s string) (EmploymentType, bool) {
	s = strings.TrimSpace(s)
	for _, v := range employmentTypes {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	return "", false
}

// WorkType is where the work happens.
type WorkType string

const (
	WorkRemote WorkType = "remote"
	WorkHybrid WorkType = "hybrid"
	WorkOnSite WorkType = "on_site"
)

var workTypes = []WorkType{WorkRemote, WorkHybrid, WorkOnSite}

// ParseWorkType matches s case-insensitively; see ParseStatus.
func ParseWorkType(s string) (WorkType, bool) {
	s = strings.TrimSpace(s)
	for _, v := range workTypes {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	return "", false
}
