package cli

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/shopkeeper/internal/client/state"
)

// Navigable routes of the application.
const (
	RouteRoot          = "/"
	RouteRegister      = "/register"
	RouteLogin         = "/login"
	RouteProducts      = "/products"
	RouteProduct       = "/product"
	RouteCreateProduct = "/create-product"
	RouteDashboard     = "/dashboard"
)

// resolve parses a raw route and applies the routing rules: the root route
// redirects to /register, and /dashboard is guarded, so without a session
// token the resolved route is /login. Unknown routes are an error.
func (a *App) resolve(ctx context.Context, raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid route %q: %w", raw, err)
	}

	switch u.Path {
	case RouteRoot, "":
		return &url.URL{Path: RouteRegister}, nil
	case RouteDashboard:
		if !a.auth.HasSession(ctx) {
			return &url.URL{Path: RouteLogin}, nil
		}
		return u, nil
	case RouteRegister, RouteLogin, RouteProducts, RouteProduct, RouteCreateProduct:
		return u, nil
	default:
		return nil, fmt.Errorf("unknown route %q", u.Path)
	}
}

// Navigate resolves raw, makes the resolved route current, persists it and
// renders the view.
func (a *App) Navigate(ctx context.Context, raw string) error {
	u, err := a.resolve(ctx, raw)
	if err != nil {
		return err
	}

	requested, _ := url.Parse(raw)
	if requested != nil && requested.Path != u.Path && requested.Path != RouteRoot && requested.Path != "" {
		fmt.Fprintf(a.out, "Redirected to %s\n", u.Path)
	}

	a.route = u
	if err := a.states.Set(ctx, state.KeyLastRoute, []byte(u.String())); err != nil {
		a.logger.Warn(ctx, "failed to persist route", "route", u.String(), "error", err)
	}

	a.render(ctx)
	return nil
}

// Open is Navigate with REPL-friendly error reporting.
func (a *App) Open(ctx context.Context, raw string) {
	if err := a.Navigate(ctx, raw); err != nil {
		fmt.Fprintln(a.out, err.Error())
	}
}

// CurrentRoute returns the current route including its query string.
func (a *App) CurrentRoute() string {
	return a.route.String()
}

func (a *App) render(ctx context.Context) {
	switch a.route.Path {
	case RouteRegister:
		a.renderRegister(ctx)
	case RouteLogin:
		a.renderLogin(ctx)
	case RouteProducts:
		a.renderProducts(ctx)
	case RouteProduct:
		a.renderManage(ctx)
	case RouteCreateProduct:
		a.renderCreateProduct(ctx)
	case RouteDashboard:
		a.renderDashboard(ctx)
	}
}
