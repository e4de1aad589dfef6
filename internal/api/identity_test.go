package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/laboissim/labctl/internal/domain"
)

func TestExchangeCredentials(t *testing.T) {
	t.Run("returns access token", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/token/email/" || r.Method != http.MethodPost {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			var body struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			if body.Email != "marie@lab.example" {
				t.Errorf("email = %q", body.Email)
			}
			json.NewEncoder(w).Encode(map[string]string{"access": "tok-abc", "refresh": "tok-ref"})
		}))

		got, err := NewIdentity(client).ExchangeCredentials(context.Background(), "marie@lab.example", "radium")
		if err != nil {
			t.Fatalf("ExchangeCredentials() error = %v", err)
		}
		if got != "tok-abc" {
			t.Errorf("token = %q, want tok-abc", got)
		}
	})

	t.Run("missing access token", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"refresh":"only"}`))
		}))

		_, err := NewIdentity(client).ExchangeCredentials(context.Background(), "a@b.c", "x")
		if !errors.Is(err, ErrNoAccessToken) {
			t.Errorf("error = %v, want ErrNoAccessToken", err)
		}
	})

	t.Run("rejected credentials", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
		}))

		_, err := NewIdentity(client).ExchangeCredentials(context.Background(), "a@b.c", "wrong")
		var apiErr *Error
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
			t.Errorf("error = %v, want 401 api error", err)
		}
	})
}

func TestCurrentUser(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantRole domain.Role
		wantName string
	}{
		{
			name:     "superuser flag maps to admin",
			payload:  `{"id":1,"username":"root","email":"root@lab.example","is_superuser":true}`,
			wantRole: domain.RoleAdmin,
			wantName: "root",
		},
		{
			name:     "staff flag maps to admin",
			payload:  `{"id":2,"username":"staff","email":"staff@lab.example","is_staff":true}`,
			wantRole: domain.RoleAdmin,
			wantName: "staff",
		},
		{
			name:     "explicit profile role wins over flags",
			payload:  `{"id":3,"username":"marie","email":"marie@lab.example","is_staff":true,"profile":{"role":"member"}}`,
			wantRole: domain.RoleMember,
			wantName: "marie",
		},
		{
			name:     "team lead flag",
			payload:  `{"id":4,"username":"pierre","email":"pierre@lab.example","profile":{"is_chef_d_equipe":true}}`,
			wantRole: domain.RoleTeamLead,
			wantName: "pierre",
		},
		{
			name:     "plain member with email fallback name",
			payload:  `{"id":5,"email":"henri@lab.example"}`,
			wantRole: domain.RoleMember,
			wantName: "henri",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/user/" {
					t.Errorf("path = %s", r.URL.Path)
				}
				w.Write([]byte(tt.payload))
			}))

			user, err := NewIdentity(client).CurrentUser(context.Background(), "tok")
			if err != nil {
				t.Fatalf("CurrentUser() error = %v", err)
			}
			if user.Role != tt.wantRole {
				t.Errorf("Role = %q, want %q", user.Role, tt.wantRole)
			}
			if user.DisplayName != tt.wantName {
				t.Errorf("DisplayName = %q, want %q", user.DisplayName, tt.wantName)
			}
		})
	}
}

func TestCurrentUserDecodeFailure(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))

	if _, err := NewIdentity(client).CurrentUser(context.Background(), "tok"); err == nil {
		t.Fatal("CurrentUser() succeeded on malformed body")
	}
}

func TestParseTime(t *testing.T) {
	for _, s := range []string{
		"2025-06-01T12:00:00Z",
		"2025-06-01T12:00:00.123456Z",
		"2025-06-01T12:00:00",
		"2025-06-01",
	} {
		if parseTime(s).IsZero() {
			t.Errorf("parseTime(%q) = zero", s)
		}
	}
	if !parseTime("yesterday").IsZero() {
		t.Error("parseTime accepted garbage")
	}
}

func TestCurrentUserJoinedAt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":7,"username":"marie","email":"marie@lab.example","date_joined":"2024-01-15T09:30:00Z"}`))
	}))
	t.Cleanup(srv.Close)

	user, err := NewIdentity(New(Config{BaseURL: srv.URL})).CurrentUser(context.Background(), "tok")
	if err != nil {
		t.Fatalf("CurrentUser() error = %v", err)
	}
	if user.JoinedAt.IsZero() {
		t.Error("JoinedAt not parsed")
	}
}
