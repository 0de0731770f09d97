package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/securelogx/console/internal/client/ui"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	page() ui.Page
	settle(ctx context.Context)

	Submit(ctx context.Context) error
	Link(p ui.Page)
	Back()

	Reload(ctx context.Context)
	Logout(ctx context.Context) error
	Analyze() error
	CloseIncident() error
	Incidents(ctx context.Context) error
	ShowIncident(ctx context.Context, id string) error
	AdvanceIncident(ctx context.Context, id, status string) error
	ScanLog(ctx context.Context, logPath string) error
	UploadLog(ctx context.Context, path string) error
	DecryptReport(ctx context.Context, encryptedPath string) error
}

var help = map[ui.Page]string{
	ui.PageLogin:     "Available commands: submit, signup, back, exit",
	ui.PageSignup:    "Available commands: submit, login, back, exit",
	ui.PageDashboard: "Available commands: incidents, show <id>, advance <id> <status>, close, scan <path>, upload <file>, decrypt <path>, analyze, reload, logout, back, exit",
}

// runREPL reads one command per line from in and dispatches it to the
// handler for the current page. After every command it lets a settle onto
// whatever page the command navigated to.
//
// Handler errors are not printed here: flows report user-facing failures
// through the page status line. The loop exits on EOF, "exit"/"quit" or a
// cancelled ctx.
func runREPL(ctx context.Context, a execIface, prompt func() string, in *bufio.Reader, out io.Writer) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(out, prompt())
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return nil
		case "help":
			fmt.Fprintln(out, help[a.page()])
			continue
		}

		if !dispatch(ctx, a, cmd, args, out) {
			fmt.Fprintln(out, "Unknown command:", cmd)
			continue
		}
		a.settle(ctx)
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string, out io.Writer) bool {
	if cmd == "back" {
		a.Back()
		return true
	}

	switch a.page() {
	case ui.PageLogin, ui.PageSignup:
		switch {
		case cmd == "submit":
			_ = a.Submit(ctx)
		case cmd == "signup" && a.page() == ui.PageLogin:
			a.Link(ui.PageSignup)
		case cmd == "login" && a.page() == ui.PageSignup:
			a.Link(ui.PageLogin)
		default:
			return false
		}

	case ui.PageDashboard:
		switch cmd {
		case "reload":
			a.Reload(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "analyze":
			_ = a.Analyze()
		case "close":
			_ = a.CloseIncident()
		case "incidents", "l":
			_ = a.Incidents(ctx)
		case "show":
			if len(args) != 1 {
				fmt.Fprintln(out, "Usage: show <id>")
				return true
			}
			_ = a.ShowIncident(ctx, args[0])
		case "advance":
			if len(args) != 2 {
				fmt.Fprintln(out, "Usage: advance <id> <status>")
				return true
			}
			_ = a.AdvanceIncident(ctx, args[0], args[1])
		case "scan", "upload", "decrypt":
			if len(args) == 0 {
				fmt.Fprintf(out, "Usage: %s <path>\n", cmd)
				return true
			}
			path := strings.Join(args, " ")
			switch cmd {
			case "scan":
				_ = a.ScanLog(ctx, path)
			case "upload":
				_ = a.UploadLog(ctx, path)
			default:
				_ = a.DecryptReport(ctx, path)
			}
		default:
			return false
		}

	default:
		return false
	}
	return true
}
