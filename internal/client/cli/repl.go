package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies it.
type execIface interface {
	isLoggedIn() bool

	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Search(ctx context.Context, address string) error
	Clear(ctx context.Context) error
	Show(ctx context.Context) error
	History(ctx context.Context) error
	Reload(ctx context.Context) error
	Select(ctx context.Context, ids []string) error
	DeleteSelected(ctx context.Context) error
	Use(ctx context.Context, id string) error

	Go(ctx context.Context, path string) error
	Back(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: login, signup, go <path>, back, help, exit"
	helpLoggedIn  = "Available commands: search <ip>, clear, show, history, reload, select <id>..., delete, use <id>, whoami, logout, go <path>, back, help, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit". Command
// prompts read from the same reader. Command errors are reported by the
// handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("geo %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "signup", "register":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "search", "s":
			if len(args) != 1 {
				printlnFn("Usage: search <ip>")
				continue
			}
			_ = a.Search(ctx, args[0])

		case "clear":
			_ = a.Clear(ctx)

		case "show":
			_ = a.Show(ctx)

		case "history", "h":
			_ = a.History(ctx)

		case "reload":
			_ = a.Reload(ctx)

		case "select":
			if len(args) == 0 {
				printlnFn("Usage: select <id> [<id>...]")
				continue
			}
			_ = a.Select(ctx, args)

		case "delete":
			_ = a.DeleteSelected(ctx)

		case "use":
			if len(args) != 1 {
				printlnFn("Usage: use <id>")
				continue
			}
			_ = a.Use(ctx, args[0])

		case "go":
			if len(args) != 1 {
				printlnFn("Usage: go <path>")
				continue
			}
			_ = a.Go(ctx, args[0])

		case "back":
			_ = a.Back(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
