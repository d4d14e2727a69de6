package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Probe(ctx context.Context) error
	Show(ctx context.Context) error
	Update(ctx context.Context) error
	Delete(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads a line from reader, parses the first token as the command,
// and dispatches to methods on a. The loop exits on EOF, when ctx is done,
// or when the user types "exit" or "quit".
//
//	Not logged in:  help, register, login, probe, exit
//	Logged in:      help, probe, show, update, delete, logout, exit
//
// Handlers print their own errors; the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("acct %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: probe, show, update, delete, logout, exit")
			} else {
				printlnFn("Available commands: register, login, probe, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "probe":
			_ = a.Probe(ctx)

		case "show":
			if err := a.Show(ctx); errors.Is(err, errNotLoggedIn) {
				printlnFn("Please log in first.")
			}

		case "update":
			if err := a.Update(ctx); errors.Is(err, errNotLoggedIn) {
				printlnFn("Please log in first.")
			}

		case "delete":
			if err := a.Delete(ctx); errors.Is(err, errNotLoggedIn) {
				printlnFn("Please log in first.")
			}

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
