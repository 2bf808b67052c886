package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/shopkeeper/internal/client/models"
)

// rootIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type rootIface interface {
	CurrentRoute() string
	Open(ctx context.Context, raw string)
	Dispatch(ctx context.Context, cmd string, args []string)
}

// shortcuts map bare commands to the routes they open.
var shortcuts = map[string]string{
	"register":  RouteRegister,
	"login":     RouteLogin,
	"products":  RouteProducts,
	"manage":    RouteProduct,
	"create":    RouteCreateProduct,
	"dashboard": RouteDashboard,
	"home":      RouteRoot,
}

// runREPL reads commands line by line and dispatches them. Global commands
// (help, open/go, route shortcuts, exit) are handled here; everything else
// goes to the active view via Dispatch. The loop exits on EOF or when the
// user types "exit" or "quit".
func runREPL(ctx context.Context, a rootIface, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "shop %s> ", a.CurrentRoute())

		line, err := reader.ReadString('\n')
		if err != nil && (len(line) == 0 || !errors.Is(err, io.EOF)) {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(out, "Routes: /register /login /products /product /create-product /dashboard")
			fmt.Fprintln(out, "Global: open <route>, register, login, products, manage, create, dashboard, exit")
			fmt.Fprintln(out, "View commands are listed under each view")

		case "open", "go":
			if len(args) == 0 {
				fmt.Fprintln(out, "Usage: open <route>")
				continue
			}
			a.Open(ctx, args[0])

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			if route, ok := shortcuts[cmd]; ok {
				a.Open(ctx, route)
				continue
			}
			a.Dispatch(ctx, cmd, args)
		}

		if err != nil {
			return
		}
	}
}

// Root starts the interactive loop on the application's reader.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Shopkeeper catalog CLI (type 'help' for commands)")
	runREPL(ctx, a, a.reader, a.out)
}

// Dispatch routes a view-specific command to the active view.
func (a *App) Dispatch(ctx context.Context, cmd string, args []string) {
	switch a.route.Path {
	case RouteProducts:
		a.dispatchProducts(ctx, cmd, args)
	case RouteProduct:
		a.dispatchManage(ctx, cmd, args)
	case RouteDashboard:
		a.dispatchDashboard(ctx, cmd)
	default:
		fmt.Fprintf(a.out, "Unknown command: %s (use 'open %s' to rerun this form)\n", cmd, a.route.Path)
	}
}

func (a *App) dispatchProducts(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "search":
		f := a.currentFilter()
		f.Search = strings.Join(args, " ")
		a.setFilter(ctx, f)
	case "category":
		f := a.currentFilter()
		f.Category = strings.Join(args, " ")
		a.setFilter(ctx, f)
	case "clear":
		a.setFilter(ctx, models.Filter{})
	case "show":
		if len(args) == 0 {
			fmt.Fprintln(a.out, "Usage: show <id>")
			return
		}
		a.showProduct(ctx, args[0])
	case "seed":
		a.seed(ctx)
		a.render(ctx)
	case "refresh":
		if _, err := a.products.Refresh(ctx, a.currentFilter()); err == nil {
			a.render(ctx)
		} else {
			fmt.Fprintln(a.out, "Unable to load products")
		}
	default:
		fmt.Fprintf(a.out, "Unknown command: %s\n", cmd)
	}
}

func (a *App) dispatchManage(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "select":
		if len(args) == 0 {
			fmt.Fprintln(a.out, "Usage: select <id>")
			return
		}
		a.toggleSelect(args[0])
	case "edit":
		if len(args) == 0 {
			fmt.Fprintln(a.out, "Usage: edit <id>")
			return
		}
		a.editProduct(ctx, args[0])
	case "delete":
		if len(args) == 0 {
			fmt.Fprintln(a.out, "Usage: delete <id>")
			return
		}
		a.deleteProduct(ctx, args[0])
	case "bulk":
		a.bulkDelete(ctx)
	case "refresh":
		if _, err := a.products.Refresh(ctx, models.Filter{}); err == nil {
			a.render(ctx)
		} else {
			fmt.Fprintln(a.out, "Unable to load products")
		}
	default:
		fmt.Fprintf(a.out, "Unknown command: %s\n", cmd)
	}
}

func (a *App) dispatchDashboard(ctx context.Context, cmd string) {
	switch cmd {
	case "logout":
		a.logout(ctx)
	case "reset":
		a.resetLocalState(ctx)
	case "refresh":
		a.render(ctx)
	default:
		fmt.Fprintf(a.out, "Unknown command: %s\n", cmd)
	}
}
