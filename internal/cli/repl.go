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
// The real App type satisfies this interface; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Campaigns(ctx context.Context) error
	Donate(ctx context.Context) error
	History(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the GiveHub terminal client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Signed-out commands: help, signup, login, campaigns, exit.
// Signed-in commands: help, whoami, campaigns, donate, history, logout, exit.
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures to the user. That keeps the loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("givehub> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, campaigns, donate, history, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, campaigns, exit")
			}

		case "signup":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "campaigns":
			_ = a.Campaigns(ctx)

		case "donate":
			_ = a.Donate(ctx)

		case "history":
			_ = a.History(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
