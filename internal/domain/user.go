package domain

import (
	"strings"
	"time"
)

// Role is a user's role within the team.
type Role string

const (
	RoleMember   Role = "member"
	RoleAdmin    Role = "admin"
	RoleTeamLead Role = "team_lead"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleAdmin, RoleTeamLead:
		return true
	}
	return false
}

// UserStatus is a user's account standing.
type UserStatus string

const (
	UserActive  UserStatus = "active"
	UserBanned  UserStatus = "banned"
	UserPending UserStatus = "pending"
)

// UserProfile is the derived identity snapshot for an authenticated user.
// It is rebuilt wholesale on every auth event and never mutated in place;
// the bearer token remains the source of truth.
type UserProfile struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Role        Role       `json:"role"`
	Status      UserStatus `json:"status"`
	Verified    bool       `json:"verified"`
	JoinedAt    time.Time  `json:"joined_at"`
}

// WithRole returns a copy of the profile with the role replaced.
func (u UserProfile) WithRole(role Role) UserProfile {
	u.Role = role
	return u
}

// RoleSignals carries every identity hint the backend can express for a
// user. The API sends role information in two shapes depending on the
// endpoint: an explicit role string, or Django-style boolean flags.
type RoleSignals struct {
	Explicit  Role
	Superuser bool
	Staff     bool
	TeamLead  bool
}

// ResolveRole normalizes role signals into a single Role. Precedence:
// explicit role claim, then superuser/staff flags, then the team-lead
// flag, defaulting to member.
func ResolveRole(s RoleSignals) Role {
	if s.Explicit.Valid() {
		return s.Explicit
	}
	if s.Superuser || s.Staff {
		return RoleAdmin
	}
	if s.TeamLead {
		return RoleTeamLead
	}
	return RoleMember
}

// DisplayNameFallback derives a display name when none is known: the
// local part of the email, or the empty string if the email is unusable.
func DisplayNameFallback(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return ""
	}
	return email[:at]
}
