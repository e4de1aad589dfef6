package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/laboissim/labctl/internal/domain"
)

// cmdPublications lists and manages publications.
func (a *app) cmdPublications(ctx context.Context, args []string) error {
	bearer, err := a.requireAuth()
	if err != nil {
		return err
	}

	if len(args) < 1 {
		pubs, err := a.publications.List(ctx, bearer)
		if err != nil {
			return a.authErr(err)
		}
		if len(pubs) == 0 {
			fmt.Println("No publications")
			return nil
		}
		for _, p := range pubs {
			fmt.Printf("#%-4s %s\n", p.ID, p.Title)
			if len(p.Keywords) > 0 {
				fmt.Printf("      keywords: %s\n", strings.Join(p.Keywords, ", "))
			}
			fmt.Printf("      posted %s\n", p.PostedAt.Format("2006-01-02"))
		}
		return nil
	}

	switch args[0] {
	case "create":
		if len(args) < 3 {
			return fmt.Errorf("usage: labctl publications create <title> <abstract> [keywords,comma,separated]")
		}
		pub := domain.Publication{Title: args[1], Abstract: args[2]}
		if len(args) >= 4 {
			pub.Keywords = strings.Split(args[3], ",")
		}
		created, err := a.publications.Create(ctx, bearer, pub)
		if err != nil {
			return a.authErr(err)
		}
		fmt.Printf("Publication #%s created\n", created.ID)
		return nil

	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: labctl publications delete <id>")
		}
		if err := a.publications.Delete(ctx, bearer, args[1]); err != nil {
			return a.authErr(err)
		}
		fmt.Printf("Publication %s deleted\n", args[1])
		return nil

	case "search-members":
		if len(args) < 2 {
			return fmt.Errorf("usage: labctl publications search-members <query>")
		}
		users, err := a.publications.SearchMembers(ctx, bearer, args[1])
		if err != nil {
			return a.authErr(err)
		}
		for _, u := range users {
			fmt.Printf("#%-4s %s <%s>\n", u.ID, u.DisplayName, u.Email)
		}
		return nil

	default:
		return fmt.Errorf("unknown publications command: %s", args[0])
	}
}

// cmdExternals lists external collaborators.
func (a *app) cmdExternals(ctx context.Context) error {
	bearer, err := a.requireAuth()
	if err != nil {
		return err
	}

	externals, err := a.publications.ListExternalMembers(ctx, bearer)
	if err != nil {
		return a.authErr(err)
	}
	if len(externals) == 0 {
		fmt.Println("No external collaborators")
		return nil
	}
	for _, e := range externals {
		fmt.Printf("#%-4s %-24s %s (%s)\n", e.ID, e.Name, e.Email, e.Affiliation)
	}
	return nil
}
