package main

import (
	"context"
	"fmt"
	"time"

	"github.com/laboissim/labctl/internal/domain"
)

// cmdEvents lists events and manages registrations.
func (a *app) cmdEvents(ctx context.Context, args []string) error {
	bearer, err := a.requireAuth()
	if err != nil {
		return err
	}

	if len(args) < 1 {
		events, err := a.events.List(ctx, bearer)
		if err != nil {
			return a.authErr(err)
		}
		if len(events) == 0 {
			fmt.Println("No events")
			return nil
		}
		for _, e := range events {
			full := ""
			if e.IsFull {
				full = " (full)"
			}
			fmt.Printf("#%-4s %s [%s]%s\n", e.ID, e.Title, e.Type, full)
			fmt.Printf("      %s — %s, %s\n", e.StartDate.Format("2006-01-02 15:04"), e.Location, registrationSummary(e))
		}
		return nil
	}

	switch args[0] {
	case "create":
		if len(args) < 5 {
			return fmt.Errorf("usage: labctl events create <title> <type> <location> <start-rfc3339> [end-rfc3339]")
		}
		start, err := time.Parse(time.RFC3339, args[4])
		if err != nil {
			return fmt.Errorf("parse start date: %w", err)
		}
		ev := domain.Event{
			Title:     args[1],
			Type:      domain.EventType(args[2]),
			Location:  args[3],
			StartDate: start,
			EndDate:   start,
		}
		if len(args) >= 6 {
			end, err := time.Parse(time.RFC3339, args[5])
			if err != nil {
				return fmt.Errorf("parse end date: %w", err)
			}
			ev.EndDate = end
		}
		created, err := a.events.Create(ctx, bearer, ev)
		if err != nil {
			return a.authErr(err)
		}
		fmt.Printf("Event #%s created\n", created.ID)
		return nil

	case "register":
		if len(args) < 2 {
			return fmt.Errorf("usage: labctl events register <event-id> [notes]")
		}
		notes := ""
		if len(args) >= 3 {
			notes = args[2]
		}
		if err := a.events.Register(ctx, bearer, args[1], notes); err != nil {
			return a.authErr(err)
		}
		fmt.Printf("Registered for event %s\n", args[1])
		return nil

	case "unregister":
		if len(args) < 2 {
			return fmt.Errorf("usage: labctl events unregister <event-id>")
		}
		if err := a.events.Unregister(ctx, bearer, args[1]); err != nil {
			return a.authErr(err)
		}
		fmt.Printf("Unregistered from event %s\n", args[1])
		return nil

	case "registrations":
		if len(args) < 2 {
			return fmt.Errorf("usage: labctl events registrations <event-id>")
		}
		regs, err := a.events.Registrations(ctx, bearer, args[1])
		if err != nil {
			return a.authErr(err)
		}
		if len(regs) == 0 {
			fmt.Println("No registrations")
			return nil
		}
		for _, r := range regs {
			fmt.Printf("[%s] #%s %s (user %s)\n", r.Status, r.ID, r.UserName, r.UserID)
			if r.Notes != "" {
				fmt.Printf("    %s\n", r.Notes)
			}
		}
		return nil

	case "confirm", "cancel":
		if len(args) < 3 {
			return fmt.Errorf("usage: labctl events %s <event-id> <registration-id>", args[0])
		}
		status := domain.RegistrationConfirmed
		if args[0] == "cancel" {
			status = domain.RegistrationCancelled
		}
		if err := a.events.UpdateRegistrationStatus(ctx, bearer, args[1], args[2], status); err != nil {
			return a.authErr(err)
		}
		fmt.Printf("Registration %s is now %s\n", args[2], status)
		return nil

	default:
		return fmt.Errorf("unknown events command: %s", args[0])
	}
}

func registrationSummary(e domain.Event) string {
	if e.MaxParticipants > 0 {
		return fmt.Sprintf("%d/%d registered", e.RegisteredCount, e.MaxParticipants)
	}
	return fmt.Sprintf("%d registered", e.RegisteredCount)
}
