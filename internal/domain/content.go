package domain

// SiteContent holds the editable public-site copy. There is a single
// instance; only admins may update it.
type SiteContent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	About       string `json:"about"`
	Contact     string `json:"contact"`
}

// TeamMember is the public directory entry for a member of the team.
type TeamMember struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
	Bio      string `json:"bio,omitempty"`
}
