package domain

import "testing"

func TestResolveRole(t *testing.T) {
	tests := []struct {
		name    string
		signals RoleSignals
		want    Role
	}{
		{"explicit role wins", RoleSignals{Explicit: RoleMember, Superuser: true}, RoleMember},
		{"explicit team lead", RoleSignals{Explicit: RoleTeamLead}, RoleTeamLead},
		{"unknown explicit role falls through", RoleSignals{Explicit: Role("manager"), Staff: true}, RoleAdmin},
		{"superuser maps to admin", RoleSignals{Superuser: true}, RoleAdmin},
		{"staff maps to admin", RoleSignals{Staff: true}, RoleAdmin},
		{"team lead flag", RoleSignals{TeamLead: true}, RoleTeamLead},
		{"no signals defaults to member", RoleSignals{}, RoleMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveRole(tt.signals); got != tt.want {
				t.Errorf("ResolveRole(%+v) = %q, want %q", tt.signals, got, tt.want)
			}
		})
	}
}

func TestDisplayNameFallback(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"marie@lab.example", "marie"},
		{"@lab.example", ""},
		{"no-at-sign", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := DisplayNameFallback(tt.email); got != tt.want {
			t.Errorf("DisplayNameFallback(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestWithRoleDoesNotMutate(t *testing.T) {
	u := UserProfile{ID: "7", Role: RoleMember}
	v := u.WithRole(RoleAdmin)
	if u.Role != RoleMember {
		t.Error("WithRole mutated the receiver")
	}
	if v.Role != RoleAdmin {
		t.Errorf("WithRole returned %q", v.Role)
	}
}
