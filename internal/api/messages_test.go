package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/laboissim/labctl/internal/domain"
)

func TestSubmitContactIsAnonymous(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("contact form submission carried a bearer token")
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"id":12,"name":"` + body["name"] + `","status":"new"}`))
	}))

	msg, err := NewMessages(client).SubmitContact(context.Background(), domain.ContactMessage{
		Name:    "Visitor",
		Email:   "visitor@example.org",
		Subject: "Collaboration",
		Message: "Hello",
	})
	if err != nil {
		t.Fatalf("SubmitContact() error = %v", err)
	}
	if msg.ID != "12" || msg.Status != domain.ContactNew {
		t.Errorf("SubmitContact() = %+v", msg)
	}
}

func TestListInternal(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":1,"sender":7,"receiver":9,"subject":"hi","message":"x","status":"unread","reply_to":null,"conversation_id":"7-9"},
			{"id":2,"sender":9,"receiver":7,"subject":"re: hi","message":"y","status":"read","reply_to":1,"conversation_id":"7-9"}
		]`))
	}))

	msgs, err := NewMessages(client).ListInternal(context.Background(), "tok")
	if err != nil {
		t.Fatalf("ListInternal() error = %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].ReplyToID != "" {
		t.Errorf("msgs[0].ReplyToID = %q, want empty", msgs[0].ReplyToID)
	}
	if msgs[1].ReplyToID != "1" {
		t.Errorf("msgs[1].ReplyToID = %q, want 1", msgs[1].ReplyToID)
	}
	if msgs[0].SenderID != "7" || msgs[0].ReceiverID != "9" {
		t.Errorf("msgs[0] ids = %q/%q", msgs[0].SenderID, msgs[0].ReceiverID)
	}
}

func TestConversationQuery(t *testing.T) {
	var gotQuery string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))

	if _, err := NewMessages(client).Conversation(context.Background(), "tok", "9"); err != nil {
		t.Fatalf("Conversation() error = %v", err)
	}
	if gotQuery != "user_id=9" {
		t.Errorf("query = %q, want user_id=9", gotQuery)
	}
}

func TestUnreadCount(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages/internal/unread_count/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"unread_count":5}`))
	}))

	n, err := NewMessages(client).UnreadCount(context.Background(), "tok", "")
	if err != nil {
		t.Fatalf("UnreadCount() error = %v", err)
	}
	if n != 5 {
		t.Errorf("UnreadCount() = %d, want 5", n)
	}
}

func TestSubmitAccountRequest(t *testing.T) {
	var gotBody map[string]string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("account request carried a bearer token")
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id":3,"status":"pending"}`))
	}))

	req, err := NewMessages(client).SubmitAccountRequest(context.Background(), "New Member", "new@lab.example", "s3cret", "joining the optics group")
	if err != nil {
		t.Fatalf("SubmitAccountRequest() error = %v", err)
	}
	if req.Status != domain.RequestPending {
		t.Errorf("Status = %q, want pending", req.Status)
	}
	if gotBody["password"] != "s3cret" || gotBody["reason"] == "" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestUpdateContactStatus(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{"id":12,"status":"read"}`))
	}))

	msg, err := NewMessages(client).UpdateContactStatus(context.Background(), "tok", "12", domain.ContactRead)
	if err != nil {
		t.Fatalf("UpdateContactStatus() error = %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/messages/contact/12/" {
		t.Errorf("sent %s %s", gotMethod, gotPath)
	}
	if msg.Status != domain.ContactRead {
		t.Errorf("Status = %q", msg.Status)
	}
}
