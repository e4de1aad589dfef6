package main

import (
	"context"
	"fmt"

	"github.com/laboissim/labctl/internal/domain"
)

// cmdUsers manages the member directory.
func (a *app) cmdUsers(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Println(`User commands:

  labctl users list                List all members
  labctl users role <id> <role>    Change a member's role (member, admin, team_lead)
  labctl users ban <id>            Deactivate a member
  labctl users unban <id>          Reactivate a member
  labctl users delete <id>         Remove a member permanently`)
		return nil
	}

	switch args[0] {
	case "list":
		return a.cmdUsersList(ctx)
	case "role":
		if len(args) < 3 {
			return fmt.Errorf("usage: labctl users role <id> <role>")
		}
		return a.cmdUsersRole(ctx, args[1], args[2])
	case "ban":
		if len(args) < 2 {
			return fmt.Errorf("usage: labctl users ban <id>")
		}
		return a.cmdUsersBan(ctx, args[1])
	case "unban":
		if len(args) < 2 {
			return fmt.Errorf("usage: labctl users unban <id>")
		}
		return a.cmdUsersUnban(ctx, args[1])
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: labctl users delete <id>")
		}
		return a.cmdUsersDelete(ctx, args[1])
	default:
		return fmt.Errorf("unknown users command: %s", args[0])
	}
}

func (a *app) cmdUsersList(ctx context.Context) error {
	bearer, err := a.requireAuth()
	if err != nil {
		return err
	}

	users, err := a.users.List(ctx, bearer)
	if err != nil {
		// Unreachable server: fall back to the cached directory.
		if a.cache != nil {
			if cached, cacheErr := a.cache.Directory(); cacheErr == nil && len(cached) > 0 {
				fmt.Println("(offline: showing cached directory)")
				printUsers(cached)
				return nil
			}
		}
		return a.authErr(err)
	}

	printUsers(users)
	return nil
}

func printUsers(users []domain.UserProfile) {
	fmt.Printf("%-6s %-20s %-28s %-10s %-8s\n", "ID", "NAME", "EMAIL", "ROLE", "STATUS")
	for _, u := range users {
		fmt.Printf("%-6s %-20s %-28s %-10s %-8s\n", u.ID, u.DisplayName, u.Email, u.Role, u.Status)
	}
}

func (a *app) cmdUsersRole(ctx context.Context, id, role string) error {
	if _, err := a.requireAuth(); err != nil {
		return err
	}

	r := domain.Role(role)
	if !r.Valid() {
		return fmt.Errorf("invalid role %q (member, admin, team_lead)", role)
	}

	if err := a.manager.UpdateRole(ctx, id, r); err != nil {
		return err
	}
	a.manager.Wait()
	fmt.Printf("Role of user %s set to %s\n", id, r)
	return nil
}

func (a *app) cmdUsersBan(ctx context.Context, id string) error {
	if _, err := a.requireAuth(); err != nil {
		return err
	}
	if err := a.manager.Ban(ctx, id); err != nil {
		return err
	}
	a.manager.Wait()
	fmt.Printf("User %s deactivated\n", id)
	return nil
}

func (a *app) cmdUsersUnban(ctx context.Context, id string) error {
	if _, err := a.requireAuth(); err != nil {
		return err
	}
	if err := a.manager.Unban(ctx, id); err != nil {
		return err
	}
	a.manager.Wait()
	fmt.Printf("User %s reactivated\n", id)
	return nil
}

func (a *app) cmdUsersDelete(ctx context.Context, id string) error {
	if _, err := a.requireAuth(); err != nil {
		return err
	}
	if err := a.manager.Delete(ctx, id); err != nil {
		return err
	}
	a.manager.Wait()
	fmt.Printf("User %s deleted\n", id)
	return nil
}
