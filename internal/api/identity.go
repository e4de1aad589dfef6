package api

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/laboissim/labctl/internal/domain"
)

// ErrNoAccessToken means the credential exchange succeeded but the
// response carried no access token.
var ErrNoAccessToken = errors.New("token response missing access token")

// Identity talks to the credential-exchange and profile endpoints.
type Identity struct {
	client *Client
}

// NewIdentity creates an identity client.
func NewIdentity(client *Client) *Identity {
	return &Identity{client: client}
}

// ExchangeCredentials trades email+password for a bearer token.
func (i *Identity) ExchangeCredentials(ctx context.Context, email, password string) (string, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var pair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := i.client.post(ctx, "/token/email/", "", body, &pair); err != nil {
		return "", err
	}
	if pair.Access == "" {
		return "", ErrNoAccessToken
	}
	return pair.Access, nil
}

// profileDTO is the wire shape of GET /user/.
type profileDTO struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	DateJoined  string `json:"date_joined"`
	FullName    string `json:"full_name"`
	Profile     *struct {
		Role        string `json:"role"`
		IsChefEquip bool   `json:"is_chef_d_equipe"`
		Bio         string `json:"bio"`
	} `json:"profile"`
}

func (d profileDTO) toDomain() domain.UserProfile {
	signals := domain.RoleSignals{
		Superuser: d.IsSuperuser,
		Staff:     d.IsStaff,
	}
	if d.Profile != nil {
		signals.Explicit = domain.Role(d.Profile.Role)
		signals.TeamLead = d.Profile.IsChefEquip
	}

	name := d.Username
	if name == "" {
		name = domain.DisplayNameFallback(d.Email)
	}

	return domain.UserProfile{
		ID:          strconv.FormatInt(d.ID, 10),
		Email:       d.Email,
		DisplayName: name,
		Role:        domain.ResolveRole(signals),
		Status:      domain.UserActive,
		Verified:    true,
		JoinedAt:    parseTime(d.DateJoined),
	}
}

// CurrentUser fetches the authoritative profile for the token.
func (i *Identity) CurrentUser(ctx context.Context, bearer string) (domain.UserProfile, error) {
	var dto profileDTO
	if err := i.client.get(ctx, "/user/", bearer, nil, &dto); err != nil {
		return domain.UserProfile{}, err
	}
	return dto.toDomain(), nil
}

// parseTime handles the timestamp shapes the backend emits: RFC 3339
// with or without fractional seconds, and bare dates. Unparseable input
// yields the zero time.
func parseTime(s string) time.Time {
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
