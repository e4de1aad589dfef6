package main

import (
	"context"
	"fmt"
	"os"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "help", "-h", "--help":
		printUsage()
		return
	case "version", "-v", "--version":
		fmt.Printf("labctl %s\n", Version)
		return
	}

	ctx := context.Background()
	app, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer app.close()

	switch cmd {
	case "login":
		err = app.cmdLogin(ctx, args)
	case "logout":
		err = app.cmdLogout()
	case "whoami":
		err = app.cmdWhoami()
	case "notifications":
		err = app.cmdNotifications(ctx)
	case "users":
		err = app.cmdUsers(ctx, args)
	case "inbox":
		err = app.cmdInbox(ctx, args)
	case "requests":
		err = app.cmdRequests(ctx, args)
	case "messages":
		err = app.cmdMessages(ctx, args)
	case "contact":
		err = app.cmdContact(ctx, args)
	case "request-account":
		err = app.cmdRequestAccount(ctx, args)
	case "events":
		err = app.cmdEvents(ctx, args)
	case "publications":
		err = app.cmdPublications(ctx, args)
	case "externals":
		err = app.cmdExternals(ctx)
	case "projects":
		err = app.cmdProjects(ctx, args)
	case "documents":
		err = app.cmdDocuments(ctx, args)
	case "content":
		err = app.cmdContent(ctx, args)
	case "team":
		err = app.cmdTeam(ctx)
	case "config":
		err = app.cmdConfig()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`labctl - research team collaboration client

Usage:
  labctl <command> [arguments]

Session Commands:
  login <email>       Sign in and store the session
  logout              End the session and clear stored data
  whoami              Show the current user
  notifications       Show dashboard counters

Team Commands:
  users list          List all members (admin)
  users role          Change a member's role (admin)
  users ban           Deactivate a member (admin)
  users unban         Reactivate a member (admin)
  users delete        Remove a member (admin)
  team                Show the public member directory

Messaging Commands:
  inbox               List contact-form messages (admin)
  inbox read <id>     Mark a contact message as read
  requests            List account requests (admin)
  requests approve    Approve an account request
  requests reject     Reject an account request
  messages            List your internal messages
  messages send       Send a message to a member
  messages threads    List conversation summaries
  messages with <id>  Show the thread with one member
  contact             Submit a contact-form message (no login needed)
  request-account     Request a member account (no login needed)

Collaboration Commands:
  events              List events, register, manage registrations
  publications        List, create, delete publications
  externals           List external collaborators
  projects            List projects, manage team members
  documents           List project documents
  content             Show or update public-site content

Other:
  config              Show current configuration
  help                Show this help message
  version             Show version information

Examples:
  labctl login marie@lab.example   # Sign in
  labctl users list                # List members
  labctl messages with 9           # Show conversation with member 9
  labctl events register 3         # Register for event 3`)
}
