package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shopkeeper/internal/client/api"
	"github.com/dmitrijs2005/shopkeeper/internal/client/state"
)

// renderDashboard fetches and shows the user's profile. A rejected token
// has already been cleared by the service; the view just sends the user
// back to the login form.
func (a *App) renderDashboard(ctx context.Context) {
	profile, err := a.auth.Profile(ctx)
	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			fmt.Fprintln(a.out, "Session expired, please log in again")
			a.Open(ctx, RouteLogin)
			return
		}
		fmt.Fprintf(a.out, "Failed to load profile: %s\n", err.Error())
		return
	}

	fmt.Fprintln(a.out, "-- Dashboard --")
	fmt.Fprintf(a.out, "Welcome back, %s! (%s)\n", profile.Username, profile.Email)
	fmt.Fprintln(a.out, "Commands: logout, reset, refresh")
}

func (a *App) logout(ctx context.Context) {
	if err := a.auth.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "Logout failed: %s\n", err.Error())
		return
	}
	a.Open(ctx, RouteLogin)
}

// resetLocalState forgets everything stored on this machine, the session
// included, and starts over at the registration form.
func (a *App) resetLocalState(ctx context.Context) {
	if err := state.Reset(ctx, a.db, RouteRegister); err != nil {
		fmt.Fprintf(a.out, "Reset failed: %s\n", err.Error())
		return
	}
	fmt.Fprintln(a.out, "Local state cleared")
	a.Open(ctx, RouteRegister)
}
