package domain

import "time"

// Publication is a research output posted by a member, optionally tagging
// other members and external collaborators.
type Publication struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Abstract        string    `json:"abstract"`
	PostedBy        string    `json:"posted_by"`
	PostedAt        time.Time `json:"posted_at"`
	Keywords        []string  `json:"keywords,omitempty"`
	TaggedMembers   []string  `json:"tagged_members,omitempty"`
	TaggedExternals []string  `json:"tagged_externals,omitempty"`
}

// ExternalMember is a collaborator outside the team who can be tagged on
// publications.
type ExternalMember struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
}
