package api

import (
	"context"
	"strconv"

	"github.com/laboissim/labctl/internal/domain"
)

// Content talks to the site-content and team-member endpoints.
type Content struct {
	client *Client
}

// NewContent creates a content client.
func NewContent(client *Client) *Content {
	return &Content{client: client}
}

// SiteContent fetches the editable public-site copy.
func (c *Content) SiteContent(ctx context.Context, bearer string) (domain.SiteContent, error) {
	var out domain.SiteContent
	if err := c.client.get(ctx, "/site-content/", bearer, nil, &out); err != nil {
		return domain.SiteContent{}, err
	}
	return out, nil
}

// UpdateSiteContent replaces the public-site copy (admin only).
func (c *Content) UpdateSiteContent(ctx context.Context, bearer string, content domain.SiteContent) (domain.SiteContent, error) {
	var out domain.SiteContent
	if err := c.client.put(ctx, "/site-content/", bearer, content, &out); err != nil {
		return domain.SiteContent{}, err
	}
	return out, nil
}

// TeamMembers fetches the public member directory.
func (c *Content) TeamMembers(ctx context.Context) ([]domain.TeamMember, error) {
	var dtos []profileDTO
	if err := c.client.get(ctx, "/team-members/", "", nil, &dtos); err != nil {
		return nil, err
	}

	out := make([]domain.TeamMember, 0, len(dtos))
	for _, d := range dtos {
		member := domain.TeamMember{
			ID:       strconv.FormatInt(d.ID, 10),
			FullName: d.FullName,
			Role:     d.toDomain().Role,
		}
		if member.FullName == "" {
			member.FullName = d.Username
		}
		if d.Profile != nil {
			member.Bio = d.Profile.Bio
		}
		out = append(out, member)
	}
	return out, nil
}
