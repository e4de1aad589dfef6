package main

import (
	"context"
	"fmt"

	"github.com/laboissim/labctl/internal/domain"
)

// cmdMessages manages internal member-to-member messaging.
func (a *app) cmdMessages(ctx context.Context, args []string) error {
	bearer, err := a.requireAuth()
	if err != nil {
		return err
	}

	if len(args) < 1 {
		return a.cmdMessagesList(ctx, bearer)
	}

	switch args[0] {
	case "send":
		if len(args) < 4 {
			return fmt.Errorf("usage: labctl messages send <user-id> <subject> <message> [reply-to-id]")
		}
		replyTo := ""
		if len(args) >= 5 {
			replyTo = args[4]
		}
		msg, err := a.messages.SendInternal(ctx, bearer, args[1], args[2], args[3], replyTo)
		if err != nil {
			return a.authErr(err)
		}
		fmt.Printf("Sent message #%s to %s\n", msg.ID, msg.ReceiverName)
		return nil

	case "threads":
		convs, err := a.messages.Conversations(ctx, bearer)
		if err != nil {
			return a.authErr(err)
		}
		if len(convs) == 0 {
			fmt.Println("No conversations")
			return nil
		}
		for _, c := range convs {
			marker := " "
			if c.UnreadCount > 0 {
				marker = "*"
			}
			fmt.Printf("%s %s (#%s) — %d unread\n", marker, c.UserName, c.UserID, c.UnreadCount)
			fmt.Printf("    last: %s\n", c.LastMessage.Subject)
		}
		return nil

	case "with":
		if len(args) < 2 {
			return fmt.Errorf("usage: labctl messages with <user-id>")
		}
		msgs, err := a.messages.Conversation(ctx, bearer, args[1])
		if err != nil {
			return a.authErr(err)
		}
		printInternalMessages(msgs)
		return nil

	case "read":
		if len(args) < 2 {
			return fmt.Errorf("usage: labctl messages read <message-id>")
		}
		msg, err := a.messages.MarkRead(ctx, bearer, args[1])
		if err != nil {
			return a.authErr(err)
		}
		fmt.Printf("Message #%s marked as read\n", msg.ID)
		return nil

	default:
		return fmt.Errorf("unknown messages command: %s", args[0])
	}
}

func (a *app) cmdMessagesList(ctx context.Context, bearer string) error {
	msgs, err := a.messages.ListInternal(ctx, bearer)
	if err != nil {
		if a.cache != nil {
			if cached, cacheErr := a.cache.InternalMessages(); cacheErr == nil && len(cached) > 0 {
				fmt.Println("(offline: showing cached messages)")
				printInternalMessages(cached)
				return nil
			}
		}
		return a.authErr(err)
	}
	printInternalMessages(msgs)
	return nil
}

func printInternalMessages(msgs []domain.InternalMessage) {
	if len(msgs) == 0 {
		fmt.Println("No messages")
		return
	}
	for _, m := range msgs {
		marker := " "
		if m.Status == domain.MessageUnread {
			marker = "*"
		}
		fmt.Printf("%s #%s %s -> %s: %s\n", marker, m.ID, m.SenderName, m.ReceiverName, m.Subject)
		fmt.Printf("    %s — %s\n", m.Message, m.CreatedAt.Format("2006-01-02 15:04"))
	}
}
