package main

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"
)

// cmdContent shows or updates the public-site content.
func (a *app) cmdContent(ctx context.Context, args []string) error {
	bearer, err := a.requireAuth()
	if err != nil {
		return err
	}

	if len(args) >= 3 && args[0] == "set" {
		content, err := a.content.SiteContent(ctx, bearer)
		if err != nil {
			return a.authErr(err)
		}

		switch args[1] {
		case "title":
			content.Title = args[2]
		case "description":
			content.Description = args[2]
		case "about":
			content.About = args[2]
		case "contact":
			content.Contact = args[2]
		default:
			return fmt.Errorf("unknown content field %q (title, description, about, contact)", args[1])
		}

		if _, err := a.content.UpdateSiteContent(ctx, bearer, content); err != nil {
			return a.authErr(err)
		}
		fmt.Printf("Site %s updated\n", args[1])
		return nil
	}

	content, err := a.content.SiteContent(ctx, bearer)
	if err != nil {
		return a.authErr(err)
	}
	fmt.Printf("Title:       %s\n", content.Title)
	fmt.Printf("Description: %s\n", content.Description)
	fmt.Printf("About:       %s\n", content.About)
	fmt.Printf("Contact:     %s\n", content.Contact)
	return nil
}

// cmdConfig prints the effective configuration.
func (a *app) cmdConfig() error {
	data, err := yaml.Marshal(a.cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
