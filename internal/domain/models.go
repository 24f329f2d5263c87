// Package domain defines the persistence models for users, companies, jobs,
// applications, and the activity audit trail. These types are mapped with
// GORM and shared by the repository, service, and transport layers.
package domain

import "time"

// User is a job seeker tracking their applications.
//
// Fields:
//   - ID: UUID primary key (char(36)), generated on insert.
//   - Email: as supplied by the caller; must contain "@".
//   - EmailKey: case-folded email carrying the unique index, so "A@x.com" and
//     "a@x.com" collide at the store level.
//   - PasswordHash: opaque credential hash; never serialized to clients.
//   - Name: display name.
//   - CreatedAt: server-assigned insert time (UTC).
type User struct {
	ID           string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Email        string    `json:"email"      gorm:"type:varchar(255);not null"`
	EmailKey     string    `json:"-"          gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email_key"`
	PasswordHash string    `json:"-"          gorm:"type:varchar(255);not null"`
	Name         string    `json:"name"       gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null;index"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Company is an employer that posts jobs. Names are unique case-insensitively
// through NameKey.
type Company struct {
	ID            string    `json:"id"                       gorm:"type:char(36);primaryKey"`
	Name          string    `json:"name"                     gorm:"type:varchar(255);not null"`
	NameKey       string    `json:"-"                        gorm:"type:varchar(255);not null;uniqueIndex:ux_companies_name_key"`
	Industry      *string   `json:"industry,omitempty"       gorm:"type:varchar(128)"`
	LocationCity  *string   `json:"location_city,omitempty"  gorm:"type:varchar(128)"`
	LocationState *string   `json:"location_state,omitempty" gorm:"type:varchar(64)"`
	CompanyURL    *string   `json:"company_url,omitempty"    gorm:"type:varchar(512)"`
	CreatedAt     time.Time `json:"created_at"               gorm:"not null;index"`
}

// TableName returns the database table name for Company.
func (Company) TableName() string { return "companies" }

// Job is a posting at a company. A company cannot be deleted while it still
// owns jobs; the RESTRICT constraint backs the service-level check.
type Job struct {
	ID             string         `json:"id"                   gorm:"type:char(36);primaryKey"`
	CompanyID      string         `json:"company_id"           gorm:"type:char(36);not null;index"`
	Title          string         `json:"title"                gorm:"type:varchar(255);not null"`
	EmploymentType EmploymentType `json:"employment_type"      gorm:"type:varchar(16);not null;check:employment_type IN ('internship','full_time','contract','part_time')"`
	WorkType       WorkType       `json:"work_type"            gorm:"type:varchar(16);not null;check:work_type IN ('remote','hybrid','on_site')"`
	JobURL         *string        `json:"job_url,omitempty"    gorm:"type:varchar(512)"`
	SalaryMin      *int           `json:"salary_min,omitempty"`
	SalaryMax      *int           `json:"salary_max,omitempty"`
	CreatedAt      time.Time      `json:"created_at"           gorm:"not null;index"`

	Company Company `json:"-" gorm:"foreignKey:CompanyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Job.
func (Job) TableName() string { return "jobs" }

// Application records that a user applied to a job. At most one application
// exists per (user, job) pair, enforced by ux_applications_user_job.
//
// Applications are never updated wholesale: status, notes, and source each
// have a dedicated operation so that status changes always leave an Activity.
type Application struct {
	ID            string    `json:"id"               gorm:"type:char(36);primaryKey"`
	UserID        string    `json:"user_id"          gorm:"type:char(36);not null;index;uniqueIndex:ux_applications_user_job,priority:1"`
	JobID         string    `json:"job_id"           gorm:"type:char(36);not null;index;uniqueIndex:ux_applications_user_job,priority:2"`
	Status        Status    `json:"status"           gorm:"type:varchar(16);not null;check:status IN ('applied','phone_screen','interview','offer','rejected','withdrawn')"`
	AppliedAt     time.Time `json:"applied_at"       gorm:"not null;index"`
	Source        *string   `json:"source,omitempty" gorm:"type:varchar(64)"`
	Notes         *string   `json:"notes,omitempty"  gorm:"type:text"`
	LastUpdatedAt time.Time `json:"last_updated_at"  gorm:"not null"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Job  Job  `json:"-" gorm:"foreignKey:JobID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Application.
func (Application) TableName() string { return "applications" }

// Activity is one append-only entry in an application's audit trail.
//
// Fields:
//   - ApplicationID: owning application; rows cascade-delete with it.
//   - UserID: copied from the application at insert time.
//   - EventType: what happened (see EventType).
//   - OldStatus: nil for "created".
//   - NewStatus: nil only for "created".
//   - EventTime: server-assigned; strictly increasing per application.
//   - Details: free text. This is the only mutable column.
type Activity struct {
	ID            string    `json:"id"                   gorm:"type:char(36);primaryKey"`
	ApplicationID string    `json:"application_id"       gorm:"type:char(36);not null;index:idx_activity_app_time,priority:1"`
	UserID        string    `json:"user_id"              gorm:"type:char(36);not null;index"`
	EventType     EventType `json:"event_type"           gorm:"type:varchar(32);not null;check:event_type IN ('created','status_change','note_added','interview_scheduled','followup_set')"`
	OldStatus     *Status   `json:"old_status"           gorm:"type:varchar(16)"`
	NewStatus     *Status   `json:"new_status"           gorm:"type:varchar(16)"`
	EventTime     time.Time `json:"event_time"           gorm:"not null;index:idx_activity_app_time,priority:2;index"`
	Details       string    `json:"details"              gorm:"type:text;not null;default:''"`

	Application Application `json:"-" gorm:"foreignKey:ApplicationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Activity.
func (Activity) TableName() string { return "activities" }

// ApplicationDetail is the denormalized read model of an application joined
// with its user, job, and company. It is produced by an inner join, so an
// application whose owners are missing never appears.
type ApplicationDetail struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name"`
	UserEmail     string    `json:"user_email"`
	JobID         string    `json:"job_id"`
	JobTitle      string    `json:"job_title"`
	CompanyID     string    `json:"company_id"`
	CompanyName   string    `json:"company_name"`
	Status        Status    `json:"status"`
	AppliedAt     time.Time `json:"applied_at"`
	Source        *string   `json:"source,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// RowCounts reports how many rows each table holds.
type RowCounts struct {
	Users        int64 `json:"users"`
	Companies    int64 `json:"companies"`
	Jobs         int64 `json:"jobs"`
	Applications int64 `json:"applications"`
	Activities   int64 `json:"activities"`
}

// ApplicationFilter narrows detailed application listings. Empty fields are ignored.
type ApplicationFilter struct {
	UserID string
	JobID  string
	Status Status
}

// JobFilter narrows job listings. Empty fields are ignored.
type JobFilter struct {
	CompanyID string
}
