package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isSignedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Agenda(ctx context.Context) error
	Appointments(ctx context.Context) error
	Show(ctx context.Context, id string) error
	CloseOut(ctx context.Context, id string) error
	FollowUp(ctx context.Context) error
	Offers(ctx context.Context) error
	Accept(ctx context.Context, id string) error
	Decline(ctx context.Context, id string) error
	PushToken(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the TerpLink CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Signed out:
//	  - help           — show available commands
//	  - login          — paste an access token to sign in
//	  - exit | quit    — leave the program
//
//	Signed in:
//	  - help           — show available commands
//	  - agenda         — show the calendar view
//	  - appointments   — list upcoming appointments
//	  - show <id>      — show a single appointment
//	  - close <id>     — close out an appointment (interactive form)
//	  - followup       — book a follow-up visit (interactive form)
//	  - offers         — list available offers
//	  - accept <id>    — accept an offer
//	  - decline <id>   — decline an offer
//	  - pushtoken      — register a device push token
//	  - refresh        — force a refetch of appointments and offers
//	  - logout         — sign out and drop all cached data
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers render
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("tl %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isSignedIn() {
				printlnFn("Available commands: agenda, (a)ppointments, show <id>, close <id>, followup, (o)ffers, accept <id>, decline <id>, pushtoken, refresh, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "agenda":
			_ = a.Agenda(ctx)

		case "a", "appointments":
			_ = a.Appointments(ctx)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <appointment-id>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "close":
			if len(args) == 0 {
				printlnFn("Usage: close <appointment-id>")
				continue
			}
			_ = a.CloseOut(ctx, args[0])

		case "followup":
			_ = a.FollowUp(ctx)

		case "o", "offers":
			_ = a.Offers(ctx)

		case "accept":
			if len(args) == 0 {
				printlnFn("Usage: accept <offer-id>")
				continue
			}
			_ = a.Accept(ctx, args[0])

		case "decline":
			if len(args) == 0 {
				printlnFn("Usage: decline <offer-id>")
				continue
			}
			_ = a.Decline(ctx, args[0])

		case "pushtoken":
			_ = a.PushToken(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
