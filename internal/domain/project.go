package domain

import "time"

// ProjectStatus tracks a project's lifecycle stage.
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// ProjectPriority orders projects for planning views.
type ProjectPriority string

const (
	PriorityLow    ProjectPriority = "low"
	PriorityMedium ProjectPriority = "medium"
	PriorityHigh   ProjectPriority = "high"
	PriorityUrgent ProjectPriority = "urgent"
)

// Project is a research project with a member team and attached documents.
type Project struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Status        ProjectStatus   `json:"status"`
	Priority      ProjectPriority `json:"priority"`
	StartDate     string          `json:"start_date,omitempty"`
	EndDate       string          `json:"end_date,omitempty"`
	CreatedBy     string          `json:"created_by"`
	TeamMembers   []string        `json:"team_members,omitempty"`
	DocumentCount int             `json:"documents_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ProjectDocument is a file attached to a project.
type ProjectDocument struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project"`
	Name       string    `json:"name"`
	FileType   string    `json:"file_type,omitempty"`
	Size       int64     `json:"size"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}
