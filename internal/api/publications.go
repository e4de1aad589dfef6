package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/laboissim/labctl/internal/domain"
)

// Publications talks to the publication and external-member endpoints.
type Publications struct {
	client *Client
}

// NewPublications creates a publications client.
func NewPublications(client *Client) *Publications {
	return &Publications{client: client}
}

type publicationDTO struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Abstract        string   `json:"abstract"`
	PostedBy        int64    `json:"posted_by"`
	PostedAt        string   `json:"posted_at"`
	Keywords        []string `json:"keywords"`
	TaggedMembers   []int64  `json:"tagged_members"`
	TaggedExternals []int64  `json:"tagged_externals"`
}

func (d publicationDTO) toDomain() domain.Publication {
	return domain.Publication{
		ID:              strconv.FormatInt(d.ID, 10),
		Title:           d.Title,
		Abstract:        d.Abstract,
		PostedBy:        strconv.FormatInt(d.PostedBy, 10),
		PostedAt:        parseTime(d.PostedAt),
		Keywords:        d.Keywords,
		TaggedMembers:   formatIDs(d.TaggedMembers),
		TaggedExternals: formatIDs(d.TaggedExternals),
	}
}

func formatIDs(ids []int64) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.FormatInt(id, 10)
	}
	return out
}

// List fetches all publications.
func (p *Publications) List(ctx context.Context, bearer string) ([]domain.Publication, error) {
	var dtos []publicationDTO
	if err := p.client.get(ctx, "/publications/", bearer, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.Publication, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// Create posts a new publication.
func (p *Publications) Create(ctx context.Context, bearer string, pub domain.Publication) (domain.Publication, error) {
	body := struct {
		Title    string   `json:"title"`
		Abstract string   `json:"abstract"`
		Keywords []string `json:"keywords,omitempty"`
	}{pub.Title, pub.Abstract, pub.Keywords}

	var dto publicationDTO
	if err := p.client.post(ctx, "/publications/", bearer, body, &dto); err != nil {
		return domain.Publication{}, err
	}
	return dto.toDomain(), nil
}

// Delete removes a publication.
func (p *Publications) Delete(ctx context.Context, bearer, id string) error {
	return p.client.delete(ctx, "/publications/"+id+"/", bearer)
}

// SearchMembers finds members to tag on a publication.
func (p *Publications) SearchMembers(ctx context.Context, bearer, q string) ([]domain.UserProfile, error) {
	query := url.Values{"q": {q}}
	var dtos []directoryDTO
	if err := p.client.get(ctx, "/publications/search_members/", bearer, query, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.UserProfile, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

type externalMemberDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Affiliation string `json:"affiliation"`
}

// ListExternalMembers fetches external collaborators.
func (p *Publications) ListExternalMembers(ctx context.Context, bearer string) ([]domain.ExternalMember, error) {
	var dtos []externalMemberDTO
	if err := p.client.get(ctx, "/external-members/", bearer, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.ExternalMember, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, domain.ExternalMember{
			ID:          strconv.FormatInt(d.ID, 10),
			Name:        d.Name,
			Email:       d.Email,
			Affiliation: d.Affiliation,
		})
	}
	return out, nil
}
