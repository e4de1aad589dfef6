package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/laboissim/labctl/internal/domain"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   Claims
	}{
		{
			name: "full claim set",
			claims: jwt.MapClaims{
				"user_id": "7",
				"email":   "marie@lab.example",
				"name":    "Marie Curie",
				"role":    "admin",
				"exp":     now.Add(time.Hour).Unix(),
			},
			want: Claims{
				UserID:    "7",
				Email:     "marie@lab.example",
				Name:      "Marie Curie",
				Role:      domain.RoleAdmin,
				ExpiresAt: now.Add(time.Hour),
			},
		},
		{
			name: "numeric user id",
			claims: jwt.MapClaims{
				"user_id": 42,
				"email":   "pierre@lab.example",
			},
			want: Claims{UserID: "42", Email: "pierre@lab.example"},
		},
		{
			name: "sub fallback",
			claims: jwt.MapClaims{
				"sub":   "13",
				"email": "henri@lab.example",
			},
			want: Claims{UserID: "13", Email: "henri@lab.example"},
		},
		{
			name:   "no expiry claim",
			claims: jwt.MapClaims{"user_id": "7"},
			want:   Claims{UserID: "7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(sign(t, tt.claims))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got.UserID != tt.want.UserID {
				t.Errorf("UserID = %q, want %q", got.UserID, tt.want.UserID)
			}
			if got.Email != tt.want.Email {
				t.Errorf("Email = %q, want %q", got.Email, tt.want.Email)
			}
			if got.Name != tt.want.Name {
				t.Errorf("Name = %q, want %q", got.Name, tt.want.Name)
			}
			if got.Role != tt.want.Role {
				t.Errorf("Role = %q, want %q", got.Role, tt.want.Role)
			}
			if !got.ExpiresAt.Equal(tt.want.ExpiresAt) {
				t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, tt.want.ExpiresAt)
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := Decode(raw); !errors.Is(err, ErrMalformed) {
			t.Errorf("Decode(%q) error = %v, want ErrMalformed", raw, err)
		}
	}
}

func TestExpired(t *testing.T) {
	tests := []struct {
		name   string
		claims Claims
		want   bool
	}{
		{"future expiry", Claims{ExpiresAt: now.Add(time.Minute)}, false},
		{"past expiry", Claims{ExpiresAt: now.Add(-time.Minute)}, true},
		{"no expiry claim never expires locally", Claims{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.claims.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	live := sign(t, jwt.MapClaims{"user_id": "7", "exp": now.Add(time.Hour).Unix()})
	stale := sign(t, jwt.MapClaims{"user_id": "7", "exp": now.Add(-time.Hour).Unix()})

	if !Valid(live, now) {
		t.Error("Valid() = false for live token")
	}
	if Valid(stale, now) {
		t.Error("Valid() = true for expired token")
	}
	if Valid("garbage", now) {
		t.Error("Valid() = true for malformed token")
	}
}

func TestProfile(t *testing.T) {
	t.Run("name falls back to email local part", func(t *testing.T) {
		c := Claims{UserID: "7", Email: "marie@lab.example"}
		got := c.Profile(now)
		if got.DisplayName != "marie" {
			t.Errorf("DisplayName = %q, want %q", got.DisplayName, "marie")
		}
		if got.Role != domain.RoleMember {
			t.Errorf("Role = %q, want member default", got.Role)
		}
	})

	t.Run("explicit claims win", func(t *testing.T) {
		c := Claims{UserID: "7", Email: "marie@lab.example", Name: "Marie Curie", Role: domain.RoleAdmin}
		got := c.Profile(now)
		if got.DisplayName != "Marie Curie" {
			t.Errorf("DisplayName = %q", got.DisplayName)
		}
		if got.Role != domain.RoleAdmin {
			t.Errorf("Role = %q, want admin", got.Role)
		}
	})
}
