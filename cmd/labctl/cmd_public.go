package main

import (
	"context"
	"fmt"

	"github.com/laboissim/labctl/internal/domain"
)

// cmdContact submits a contact-form message. Works without a session:
// the contact form is the public face of the site.
func (a *app) cmdContact(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: labctl contact <name> <email> <subject> <message> [category]")
	}
	msg := domain.ContactMessage{
		Name:    args[0],
		Email:   args[1],
		Subject: args[2],
		Message: args[3],
	}
	if len(args) >= 5 {
		msg.Category = args[4]
	}

	sent, err := a.messages.SubmitContact(ctx, msg)
	if err != nil {
		return err
	}
	fmt.Printf("Message sent (#%s)\n", sent.ID)
	return nil
}

// cmdRequestAccount files a membership request anonymously.
func (a *app) cmdRequestAccount(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: labctl request-account <name> <email> <password> <reason>")
	}

	req, err := a.messages.SubmitAccountRequest(ctx, args[0], args[1], args[2], args[3])
	if err != nil {
		return err
	}
	fmt.Printf("Account request filed (#%s, %s)\n", req.ID, req.Status)
	return nil
}

// cmdTeam shows the public member directory. No session required.
func (a *app) cmdTeam(ctx context.Context) error {
	members, err := a.content.TeamMembers(ctx)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		fmt.Println("No team members")
		return nil
	}
	for _, m := range members {
		fmt.Printf("#%-4s %-24s %s\n", m.ID, m.FullName, m.Role)
		if m.Bio != "" {
			fmt.Printf("      %s\n", m.Bio)
		}
	}
	return nil
}
