package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// cmdLogin signs in and builds the session.
func (a *app) cmdLogin(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: labctl login <email>")
	}
	email := args[0]

	password := os.Getenv("LABCTL_PASSWORD")
	if password == "" {
		fmt.Print("Password: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimSpace(line)
	}
	if password == "" {
		return fmt.Errorf("password required")
	}

	ok, err := a.manager.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if !ok {
		return fmt.Errorf("invalid credentials")
	}
	a.manager.Wait()

	user, _ := a.manager.User()
	fmt.Printf("Logged in as %s (%s, %s)\n", user.DisplayName, user.Email, user.Role)
	return nil
}

// cmdLogout ends the session. Always succeeds.
func (a *app) cmdLogout() error {
	a.manager.Logout()
	fmt.Println("Logged out")
	return nil
}

// cmdWhoami shows the current session.
func (a *app) cmdWhoami() error {
	user, ok := a.manager.User()
	if !ok {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("User:     %s\n", user.DisplayName)
	fmt.Printf("Email:    %s\n", user.Email)
	fmt.Printf("Role:     %s\n", user.Role)
	fmt.Printf("Status:   %s\n", user.Status)
	fmt.Printf("Verified: %t\n", user.Verified)
	if !user.JoinedAt.IsZero() {
		fmt.Printf("Joined:   %s\n", user.JoinedAt.Format("2006-01-02"))
	}
	return nil
}

// cmdNotifications shows the dashboard counters.
func (a *app) cmdNotifications(ctx context.Context) error {
	if _, err := a.requireAuth(); err != nil {
		return err
	}
	a.manager.Wait()

	n, err := a.manager.Notifications(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("New contact messages:  %d\n", n.NewContactMessages)
	fmt.Printf("Pending requests:      %d\n", n.PendingRequests)
	fmt.Printf("Unread messages:       %d\n", n.UnreadInternalMessages)
	return nil
}
