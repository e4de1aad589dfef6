package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/laboissim/labctl/internal/domain"
)

// cmdProjects lists projects and manages their teams.
func (a *app) cmdProjects(ctx context.Context, args []string) error {
	bearer, err := a.requireAuth()
	if err != nil {
		return err
	}

	if len(args) < 1 {
		projects, err := a.projects.List(ctx, bearer)
		if err != nil {
			return a.authErr(err)
		}
		if len(projects) == 0 {
			fmt.Println("No projects")
			return nil
		}
		for _, p := range projects {
			fmt.Printf("#%-4s %s [%s/%s]\n", p.ID, p.Title, p.Status, p.Priority)
			if len(p.TeamMembers) > 0 {
				fmt.Printf("      team: %s\n", strings.Join(p.TeamMembers, ", "))
			}
			fmt.Printf("      documents: %d\n", p.DocumentCount)
		}
		return nil
	}

	switch args[0] {
	case "create":
		if len(args) < 3 {
			return fmt.Errorf("usage: labctl projects create <title> <description>")
		}
		created, err := a.projects.Create(ctx, bearer, domain.Project{
			Title:       args[1],
			Description: args[2],
		})
		if err != nil {
			return a.authErr(err)
		}
		fmt.Printf("Project #%s created\n", created.ID)
		return nil

	case "add-member":
		if len(args) < 3 {
			return fmt.Errorf("usage: labctl projects add-member <project-id> <user-id>")
		}
		if err := a.projects.AddTeamMember(ctx, bearer, args[1], args[2]); err != nil {
			return a.authErr(err)
		}
		fmt.Printf("User %s added to project %s\n", args[2], args[1])
		return nil

	case "remove-member":
		if len(args) < 3 {
			return fmt.Errorf("usage: labctl projects remove-member <project-id> <user-id>")
		}
		if err := a.projects.RemoveTeamMember(ctx, bearer, args[1], args[2]); err != nil {
			return a.authErr(err)
		}
		fmt.Printf("User %s removed from project %s\n", args[2], args[1])
		return nil

	default:
		return fmt.Errorf("unknown projects command: %s", args[0])
	}
}

// cmdDocuments lists project documents.
func (a *app) cmdDocuments(ctx context.Context, args []string) error {
	bearer, err := a.requireAuth()
	if err != nil {
		return err
	}

	projectID := ""
	if len(args) >= 1 {
		projectID = args[0]
	}

	docs, err := a.projects.Documents(ctx, bearer, projectID)
	if err != nil {
		return a.authErr(err)
	}
	if len(docs) == 0 {
		fmt.Println("No documents")
		return nil
	}
	for _, d := range docs {
		fmt.Printf("#%-4s %-32s %s, %d bytes (project %s)\n", d.ID, d.Name, d.FileType, d.Size, d.ProjectID)
	}
	return nil
}
