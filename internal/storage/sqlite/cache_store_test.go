package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/laboissim/labctl/internal/domain"
)

func testStore(t *testing.T) *CacheStore {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return NewCacheStore(db)
}

func TestMigrateIdempotent(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		t.Fatalf("first Migrate() error = %v", err)
	}
	if err := db.Migrate(); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
}

func TestDirectoryReplaceAll(t *testing.T) {
	store := testStore(t)
	joined := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	first := []domain.UserProfile{
		{ID: "7", Email: "marie@lab.example", DisplayName: "Marie", Role: domain.RoleAdmin, Status: domain.UserActive, Verified: true, JoinedAt: joined},
		{ID: "9", Email: "pierre@lab.example", DisplayName: "Pierre", Role: domain.RoleMember, Status: domain.UserActive},
	}
	if err := store.ReplaceDirectory(first); err != nil {
		t.Fatalf("ReplaceDirectory() error = %v", err)
	}

	got, err := store.Directory()
	if err != nil {
		t.Fatalf("Directory() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d users, want 2", len(got))
	}
	if got[0].DisplayName != "Marie" || got[0].Role != domain.RoleAdmin {
		t.Errorf("got[0] = %+v", got[0])
	}
	if !got[0].JoinedAt.Equal(joined) {
		t.Errorf("JoinedAt = %v, want %v", got[0].JoinedAt, joined)
	}

	// A later snapshot replaces the whole table, not just changed rows.
	second := []domain.UserProfile{
		{ID: "7", Email: "marie@lab.example", DisplayName: "Marie", Role: domain.RoleTeamLead, Status: domain.UserActive, Verified: true},
	}
	if err := store.ReplaceDirectory(second); err != nil {
		t.Fatalf("ReplaceDirectory() error = %v", err)
	}
	got, err = store.Directory()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d users after replace, want 1", len(got))
	}
	if got[0].Role != domain.RoleTeamLead {
		t.Errorf("Role = %q, want team_lead", got[0].Role)
	}
}

func TestMessagesRoundTrip(t *testing.T) {
	store := testStore(t)
	created := time.Date(2025, 5, 30, 8, 0, 0, 0, time.UTC)

	contact := []domain.ContactMessage{
		{ID: "1", Name: "Visitor", Email: "v@example.org", Subject: "Hi", Message: "Hello", Status: domain.ContactNew, CreatedAt: created},
	}
	if err := store.ReplaceContactMessages(contact); err != nil {
		t.Fatalf("ReplaceContactMessages() error = %v", err)
	}
	gotContact, err := store.ContactMessages()
	if err != nil {
		t.Fatal(err)
	}
	if len(gotContact) != 1 || gotContact[0].Status != domain.ContactNew {
		t.Errorf("contact = %+v", gotContact)
	}

	requests := []domain.AccountRequest{
		{ID: "2", Name: "New Member", Email: "n@example.org", Reason: "optics group", Status: domain.RequestPending, CreatedAt: created},
	}
	if err := store.ReplaceAccountRequests(requests); err != nil {
		t.Fatalf("ReplaceAccountRequests() error = %v", err)
	}
	gotRequests, err := store.AccountRequests()
	if err != nil {
		t.Fatal(err)
	}
	if len(gotRequests) != 1 || gotRequests[0].Status != domain.RequestPending {
		t.Errorf("requests = %+v", gotRequests)
	}

	internal := []domain.InternalMessage{
		{ID: "3", SenderID: "7", ReceiverID: "9", Subject: "hi", Message: "x", Status: domain.MessageUnread, ConversationID: "7-9", CreatedAt: created},
		{ID: "4", SenderID: "9", ReceiverID: "7", Subject: "re", Message: "y", Status: domain.MessageRead, ReplyToID: "3", ConversationID: "7-9", CreatedAt: created.Add(time.Minute)},
	}
	if err := store.ReplaceInternalMessages(internal); err != nil {
		t.Fatalf("ReplaceInternalMessages() error = %v", err)
	}
	gotInternal, err := store.InternalMessages()
	if err != nil {
		t.Fatal(err)
	}
	if len(gotInternal) != 2 {
		t.Fatalf("got %d internal messages, want 2", len(gotInternal))
	}
	// Newest first
	if gotInternal[0].ID != "4" || gotInternal[0].ReplyToID != "3" {
		t.Errorf("gotInternal[0] = %+v", gotInternal[0])
	}
}

func TestClear(t *testing.T) {
	store := testStore(t)

	if err := store.ReplaceDirectory([]domain.UserProfile{{ID: "7", Email: "m@l.e", DisplayName: "M", Role: domain.RoleMember, Status: domain.UserActive}}); err != nil {
		t.Fatal(err)
	}
	if err := store.ReplaceContactMessages([]domain.ContactMessage{{ID: "1", Name: "V", Email: "v@e.o", Subject: "s", Message: "m", Status: domain.ContactNew}}); err != nil {
		t.Fatal(err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	users, err := store.Directory()
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 0 {
		t.Errorf("directory has %d rows after Clear", len(users))
	}
	msgs, err := store.ContactMessages()
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 0 {
		t.Errorf("contact messages has %d rows after Clear", len(msgs))
	}
}

func TestEmptyReplaceClearsTable(t *testing.T) {
	store := testStore(t)

	if err := store.ReplaceDirectory([]domain.UserProfile{{ID: "7", Email: "m@l.e", DisplayName: "M", Role: domain.RoleMember, Status: domain.UserActive}}); err != nil {
		t.Fatal(err)
	}
	if err := store.ReplaceDirectory(nil); err != nil {
		t.Fatalf("ReplaceDirectory(nil) error = %v", err)
	}
	users, err := store.Directory()
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 0 {
		t.Errorf("directory has %d rows after empty replace", len(users))
	}
}
