package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/laboissim/labctl/internal/domain"
)

// Messages talks to the contact-form, account-request and internal
// messaging endpoints.
type Messages struct {
	client *Client
}

// NewMessages creates a messages client.
func NewMessages(client *Client) *Messages {
	return &Messages{client: client}
}

type contactDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func (d contactDTO) toDomain() domain.ContactMessage {
	return domain.ContactMessage{
		ID:        strconv.FormatInt(d.ID, 10),
		Name:      d.Name,
		Email:     d.Email,
		Subject:   d.Subject,
		Category:  d.Category,
		Message:   d.Message,
		Status:    domain.ContactMessageStatus(d.Status),
		CreatedAt: parseTime(d.CreatedAt),
	}
}

// ListContact fetches all contact-form messages (privileged).
func (m *Messages) ListContact(ctx context.Context, bearer string) ([]domain.ContactMessage, error) {
	var dtos []contactDTO
	if err := m.client.get(ctx, "/messages/contact/", bearer, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.ContactMessage, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// SubmitContact sends a contact-form message. No bearer token: the
// public contact form is the one anonymous write in the API.
func (m *Messages) SubmitContact(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error) {
	body := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Subject  string `json:"subject"`
		Category string `json:"category"`
		Message  string `json:"message"`
	}{msg.Name, msg.Email, msg.Subject, msg.Category, msg.Message}

	var dto contactDTO
	if err := m.client.post(ctx, "/messages/contact/", "", body, &dto); err != nil {
		return domain.ContactMessage{}, err
	}
	return dto.toDomain(), nil
}

// UpdateContactStatus moves a contact message through triage.
func (m *Messages) UpdateContactStatus(ctx context.Context, bearer, id string, status domain.ContactMessageStatus) (domain.ContactMessage, error) {
	body := struct {
		Status domain.ContactMessageStatus `json:"status"`
	}{status}

	var dto contactDTO
	if err := m.client.patch(ctx, "/messages/contact/"+id+"/", bearer, body, &dto); err != nil {
		return domain.ContactMessage{}, err
	}
	return dto.toDomain(), nil
}

type accountRequestDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func (d accountRequestDTO) toDomain() domain.AccountRequest {
	return domain.AccountRequest{
		ID:        strconv.FormatInt(d.ID, 10),
		Name:      d.Name,
		Email:     d.Email,
		Reason:    d.Reason,
		Status:    domain.AccountRequestStatus(d.Status),
		CreatedAt: parseTime(d.CreatedAt),
	}
}

// ListAccountRequests fetches all membership requests (privileged).
func (m *Messages) ListAccountRequests(ctx context.Context, bearer string) ([]domain.AccountRequest, error) {
	var dtos []accountRequestDTO
	if err := m.client.get(ctx, "/messages/account-requests/", bearer, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.AccountRequest, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// SubmitAccountRequest files a membership request anonymously.
func (m *Messages) SubmitAccountRequest(ctx context.Context, name, email, password, reason string) (domain.AccountRequest, error) {
	body := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Reason   string `json:"reason"`
	}{name, email, password, reason}

	var dto accountRequestDTO
	if err := m.client.post(ctx, "/messages/account-requests/", "", body, &dto); err != nil {
		return domain.AccountRequest{}, err
	}
	return dto.toDomain(), nil
}

// UpdateAccountRequest approves or rejects a membership request.
func (m *Messages) UpdateAccountRequest(ctx context.Context, bearer, id string, status domain.AccountRequestStatus) (domain.AccountRequest, error) {
	body := struct {
		Status domain.AccountRequestStatus `json:"status"`
	}{status}

	var dto accountRequestDTO
	if err := m.client.patch(ctx, "/messages/account-requests/"+id+"/", bearer, body, &dto); err != nil {
		return domain.AccountRequest{}, err
	}
	return dto.toDomain(), nil
}

type internalDTO struct {
	ID             int64  `json:"id"`
	Sender         int64  `json:"sender"`
	Receiver       int64  `json:"receiver"`
	SenderName     string `json:"sender_name"`
	ReceiverName   string `json:"receiver_name"`
	Subject        string `json:"subject"`
	Message        string `json:"message"`
	Status         string `json:"status"`
	ReplyTo        *int64 `json:"reply_to"`
	ConversationID string `json:"conversation_id"`
	CreatedAt      string `json:"created_at"`
}

func (d internalDTO) toDomain() domain.InternalMessage {
	msg := domain.InternalMessage{
		ID:             strconv.FormatInt(d.ID, 10),
		SenderID:       strconv.FormatInt(d.Sender, 10),
		ReceiverID:     strconv.FormatInt(d.Receiver, 10),
		SenderName:     d.SenderName,
		ReceiverName:   d.ReceiverName,
		Subject:        d.Subject,
		Message:        d.Message,
		Status:         domain.InternalMessageStatus(d.Status),
		ConversationID: d.ConversationID,
		CreatedAt:      parseTime(d.CreatedAt),
	}
	if d.ReplyTo != nil {
		msg.ReplyToID = strconv.FormatInt(*d.ReplyTo, 10)
	}
	return msg
}

func internalDTOsToDomain(dtos []internalDTO) []domain.InternalMessage {
	out := make([]domain.InternalMessage, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out
}

// ListInternal fetches the caller's internal messages, sent and received.
func (m *Messages) ListInternal(ctx context.Context, bearer string) ([]domain.InternalMessage, error) {
	var dtos []internalDTO
	if err := m.client.get(ctx, "/messages/internal/", bearer, nil, &dtos); err != nil {
		return nil, err
	}
	return internalDTOsToDomain(dtos), nil
}

// SendInternal sends a message to another member, optionally as a reply.
func (m *Messages) SendInternal(ctx context.Context, bearer, receiverID, subject, message, replyToID string) (domain.InternalMessage, error) {
	body := map[string]any{
		"receiver": receiverID,
		"subject":  subject,
		"message":  message,
	}
	if replyToID != "" {
		body["reply_to"] = replyToID
	}

	var dto internalDTO
	if err := m.client.post(ctx, "/messages/internal/", bearer, body, &dto); err != nil {
		return domain.InternalMessage{}, err
	}
	return dto.toDomain(), nil
}

// MarkRead marks one received message as read.
func (m *Messages) MarkRead(ctx context.Context, bearer, id string) (domain.InternalMessage, error) {
	var dto internalDTO
	if err := m.client.post(ctx, "/messages/internal/"+id+"/mark_as_read/", bearer, nil, &dto); err != nil {
		return domain.InternalMessage{}, err
	}
	return dto.toDomain(), nil
}

// Conversation fetches the thread with one other member. The server
// marks the other side's unread messages as read as a side effect.
func (m *Messages) Conversation(ctx context.Context, bearer, userID string) ([]domain.InternalMessage, error) {
	query := url.Values{"user_id": {userID}}
	var dtos []internalDTO
	if err := m.client.get(ctx, "/messages/internal/conversation/", bearer, query, &dtos); err != nil {
		return nil, err
	}
	return internalDTOsToDomain(dtos), nil
}

type conversationDTO struct {
	UserID      int64       `json:"user_id"`
	UserName    string      `json:"user_name"`
	LastMessage internalDTO `json:"last_message"`
	UnreadCount int         `json:"unread_count"`
}

// Conversations fetches per-correspondent thread summaries.
func (m *Messages) Conversations(ctx context.Context, bearer string) ([]domain.Conversation, error) {
	var dtos []conversationDTO
	if err := m.client.get(ctx, "/messages/internal/conversations/", bearer, nil, &dtos); err != nil {
		return nil, err
	}

	out := make([]domain.Conversation, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, domain.Conversation{
			UserID:      strconv.FormatInt(d.UserID, 10),
			UserName:    d.UserName,
			LastMessage: d.LastMessage.toDomain(),
			UnreadCount: d.UnreadCount,
		})
	}
	return out, nil
}

// UnreadCount returns the caller's unread message count, optionally
// restricted to one correspondent.
func (m *Messages) UnreadCount(ctx context.Context, bearer, userID string) (int, error) {
	var query url.Values
	if userID != "" {
		query = url.Values{"user_id": {userID}}
	}

	var out struct {
		UnreadCount int `json:"unread_count"`
	}
	if err := m.client.get(ctx, "/messages/internal/unread_count/", bearer, query, &out); err != nil {
		return 0, err
	}
	return out.UnreadCount, nil
}
