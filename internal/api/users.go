package api

import (
	"context"
	"strconv"

	"github.com/laboissim/labctl/internal/domain"
)

// Users talks to the user directory and the admin user-lifecycle
// endpoints.
type Users struct {
	client *Client
}

// NewUsers creates a users client.
func NewUsers(client *Client) *Users {
	return &Users{client: client}
}

// directoryDTO is the wire shape of GET /users/ entries. Unlike the
// profile endpoint it carries an explicit role string.
type directoryDTO struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	IsActive    bool   `json:"is_active"`
	DateJoined  string `json:"date_joined"`
	Role        string `json:"role"`
	Verified    bool   `json:"verified"`
}

func (d directoryDTO) toDomain() domain.UserProfile {
	status := domain.UserActive
	if !d.IsActive {
		status = domain.UserBanned
	}

	return domain.UserProfile{
		ID:          strconv.FormatInt(d.ID, 10),
		Email:       d.Email,
		DisplayName: d.Username,
		Role: domain.ResolveRole(domain.RoleSignals{
			Explicit:  domain.Role(d.Role),
			Superuser: d.IsSuperuser,
			Staff:     d.IsStaff,
		}),
		Status:   status,
		Verified: d.Verified,
		JoinedAt: parseTime(d.DateJoined),
	}
}

// List fetches the full user directory.
func (u *Users) List(ctx context.Context, bearer string) ([]domain.UserProfile, error) {
	var dtos []directoryDTO
	if err := u.client.get(ctx, "/users/", bearer, nil, &dtos); err != nil {
		return nil, err
	}

	users := make([]domain.UserProfile, 0, len(dtos))
	for _, dto := range dtos {
		users = append(users, dto.toDomain())
	}
	return users, nil
}

// UpdateRole changes a user's role.
func (u *Users) UpdateRole(ctx context.Context, bearer, userID string, role domain.Role) error {
	body := struct {
		Role domain.Role `json:"role"`
	}{Role: role}
	return u.client.post(ctx, "/admin/update-user-role/"+userID+"/", bearer, body, nil)
}

// Ban deactivates a user account.
func (u *Users) Ban(ctx context.Context, bearer, userID string) error {
	return u.client.post(ctx, "/admin/ban-user/"+userID+"/", bearer, nil, nil)
}

// Unban reactivates a banned user account.
func (u *Users) Unban(ctx context.Context, bearer, userID string) error {
	return u.client.post(ctx, "/admin/unban-user/"+userID+"/", bearer, nil, nil)
}

// Delete removes a user account permanently.
func (u *Users) Delete(ctx context.Context, bearer, userID string) error {
	return u.client.delete(ctx, "/admin/delete-user/"+userID+"/", bearer)
}
