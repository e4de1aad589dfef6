package domain

import "time"

// ContactMessageStatus tracks triage of a public contact-form message.
type ContactMessageStatus string

const (
	ContactNew     ContactMessageStatus = "new"
	ContactRead    ContactMessageStatus = "read"
	ContactReplied ContactMessageStatus = "replied"
)

// ContactMessage is a message submitted through the public contact form.
// Submission is anonymous; listing and triage require an authenticated
// session.
type ContactMessage struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Subject   string               `json:"subject"`
	Category  string               `json:"category"`
	Message   string               `json:"message"`
	Status    ContactMessageStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}

// AccountRequestStatus tracks review of a membership request.
type AccountRequestStatus string

const (
	RequestPending  AccountRequestStatus = "pending"
	RequestApproved AccountRequestStatus = "approved"
	RequestRejected AccountRequestStatus = "rejected"
)

// AccountRequest is a request for a member account, submitted anonymously
// and reviewed by an admin.
type AccountRequest struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Reason    string               `json:"reason"`
	Status    AccountRequestStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}

// InternalMessageStatus tracks read state of a member-to-member message.
type InternalMessageStatus string

const (
	MessageUnread InternalMessageStatus = "unread"
	MessageRead   InternalMessageStatus = "read"
)

// InternalMessage is a message between two members.
type InternalMessage struct {
	ID             string                `json:"id"`
	SenderID       string                `json:"sender"`
	ReceiverID     string                `json:"receiver"`
	SenderName     string                `json:"sender_name"`
	ReceiverName   string                `json:"receiver_name"`
	Subject        string                `json:"subject"`
	Message        string                `json:"message"`
	Status         InternalMessageStatus `json:"status"`
	ReplyToID      string                `json:"reply_to,omitempty"`
	ConversationID string                `json:"conversation_id"`
	CreatedAt      time.Time             `json:"created_at"`
}

// Conversation summarizes a message thread with one other member.
type Conversation struct {
	UserID      string          `json:"user_id"`
	UserName    string          `json:"user_name"`
	LastMessage InternalMessage `json:"last_message"`
	UnreadCount int             `json:"unread_count"`
}

// Notifications aggregates the counters shown on the dashboard badge.
type Notifications struct {
	NewContactMessages     int `json:"new_messages"`
	PendingRequests        int `json:"pending_requests"`
	UnreadInternalMessages int `json:"unread_internal_messages"`
}
