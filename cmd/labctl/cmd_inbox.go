package main

import (
	"context"
	"fmt"

	"github.com/laboissim/labctl/internal/domain"
)

// cmdInbox manages the contact-form inbox.
func (a *app) cmdInbox(ctx context.Context, args []string) error {
	bearer, err := a.requireAuth()
	if err != nil {
		return err
	}

	if len(args) >= 2 && args[0] == "read" {
		msg, err := a.messages.UpdateContactStatus(ctx, bearer, args[1], domain.ContactRead)
		if err != nil {
			return a.authErr(err)
		}
		fmt.Printf("Message %s marked as %s\n", msg.ID, msg.Status)
		return nil
	}
	if len(args) >= 2 && args[0] == "replied" {
		msg, err := a.messages.UpdateContactStatus(ctx, bearer, args[1], domain.ContactReplied)
		if err != nil {
			return a.authErr(err)
		}
		fmt.Printf("Message %s marked as %s\n", msg.ID, msg.Status)
		return nil
	}

	msgs, err := a.messages.ListContact(ctx, bearer)
	if err != nil {
		if a.cache != nil {
			if cached, cacheErr := a.cache.ContactMessages(); cacheErr == nil && len(cached) > 0 {
				fmt.Println("(offline: showing cached messages)")
				printContactMessages(cached)
				return nil
			}
		}
		return a.authErr(err)
	}

	printContactMessages(msgs)
	return nil
}

func printContactMessages(msgs []domain.ContactMessage) {
	if len(msgs) == 0 {
		fmt.Println("No contact messages")
		return
	}
	for _, m := range msgs {
		fmt.Printf("[%s] #%s %s <%s>\n", m.Status, m.ID, m.Name, m.Email)
		fmt.Printf("    %s — %s\n", m.Subject, m.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// cmdRequests manages pending account requests.
func (a *app) cmdRequests(ctx context.Context, args []string) error {
	bearer, err := a.requireAuth()
	if err != nil {
		return err
	}

	if len(args) >= 2 {
		var status domain.AccountRequestStatus
		switch args[0] {
		case "approve":
			status = domain.RequestApproved
		case "reject":
			status = domain.RequestRejected
		default:
			return fmt.Errorf("unknown requests command: %s", args[0])
		}

		req, err := a.messages.UpdateAccountRequest(ctx, bearer, args[1], status)
		if err != nil {
			return a.authErr(err)
		}
		fmt.Printf("Request #%s from %s is now %s\n", req.ID, req.Email, req.Status)
		return nil
	}

	reqs, err := a.messages.ListAccountRequests(ctx, bearer)
	if err != nil {
		return a.authErr(err)
	}
	if len(reqs) == 0 {
		fmt.Println("No account requests")
		return nil
	}
	for _, r := range reqs {
		fmt.Printf("[%s] #%s %s <%s>\n", r.Status, r.ID, r.Name, r.Email)
		fmt.Printf("    %s\n", r.Reason)
	}
	return nil
}
