package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/laboissim/labctl/internal/domain"
)

// Projects talks to the project and project-document endpoints.
type Projects struct {
	client *Client
}

// NewProjects creates a projects client.
func NewProjects(client *Client) *Projects {
	return &Projects{client: client}
}

type projectDTO struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	CreatedBy      int64    `json:"created_by"`
	TeamMemberName []string `json:"team_members_names"`
	DocumentsCount int      `json:"documents_count"`
	CreatedAt      string   `json:"created_at"`
}

func (d projectDTO) toDomain() domain.Project {
	return domain.Project{
		ID:            strconv.FormatInt(d.ID, 10),
		Title:         d.Title,
		Description:   d.Description,
		Status:        domain.ProjectStatus(d.Status),
		Priority:      domain.ProjectPriority(d.Priority),
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		CreatedBy:     strconv.FormatInt(d.CreatedBy, 10),
		TeamMembers:   d.TeamMemberName,
		DocumentCount: d.DocumentsCount,
		CreatedAt:     parseTime(d.CreatedAt),
	}
}

// List fetches the caller's projects.
func (p *Projects) List(ctx context.Context, bearer string) ([]domain.Project, error) {
	var dtos []projectDTO
	if err := p.client.get(ctx, "/projects/", bearer, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// Create starts a new project owned by the caller.
func (p *Projects) Create(ctx context.Context, bearer string, proj domain.Project) (domain.Project, error) {
	body := struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status,omitempty"`
		Priority    string `json:"priority,omitempty"`
		StartDate   string `json:"start_date,omitempty"`
		EndDate     string `json:"end_date,omitempty"`
	}{
		Title:       proj.Title,
		Description: proj.Description,
		Status:      string(proj.Status),
		Priority:    string(proj.Priority),
		StartDate:   proj.StartDate,
		EndDate:     proj.EndDate,
	}

	var dto projectDTO
	if err := p.client.post(ctx, "/projects/", bearer, body, &dto); err != nil {
		return domain.Project{}, err
	}
	return dto.toDomain(), nil
}

// AddTeamMember adds a member to a project's team.
func (p *Projects) AddTeamMember(ctx context.Context, bearer, projectID, userID string) error {
	body := struct {
		UserID string `json:"user_id"`
	}{userID}
	return p.client.post(ctx, "/projects/"+projectID+"/add_team_member/", bearer, body, nil)
}

// RemoveTeamMember removes a member from a project's team.
func (p *Projects) RemoveTeamMember(ctx context.Context, bearer, projectID, userID string) error {
	body := struct {
		UserID string `json:"user_id"`
	}{userID}
	return p.client.post(ctx, "/projects/"+projectID+"/remove_team_member/", bearer, body, nil)
}

type documentDTO struct {
	ID         int64  `json:"id"`
	Project    int64  `json:"project"`
	Name       string `json:"name"`
	FileType   string `json:"file_type"`
	Size       int64  `json:"size"`
	UploadedBy int64  `json:"uploaded_by"`
	UploadedAt string `json:"uploaded_at"`
}

// Documents lists documents, optionally filtered to one project.
func (p *Projects) Documents(ctx context.Context, bearer, projectID string) ([]domain.ProjectDocument, error) {
	var query url.Values
	if projectID != "" {
		query = url.Values{"project": {projectID}}
	}

	var dtos []documentDTO
	if err := p.client.get(ctx, "/project-documents/", bearer, query, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.ProjectDocument, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, domain.ProjectDocument{
			ID:         strconv.FormatInt(d.ID, 10),
			ProjectID:  strconv.FormatInt(d.Project, 10),
			Name:       d.Name,
			FileType:   d.FileType,
			Size:       d.Size,
			UploadedBy: strconv.FormatInt(d.UploadedBy, 10),
			UploadedAt: parseTime(d.UploadedAt),
		})
	}
	return out, nil
}
