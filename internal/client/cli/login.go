package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shopkeeper/internal/client/api"
	"github.com/dmitrijs2005/shopkeeper/internal/common"
)

// renderLogin runs the login form. On success the token is persisted and
// the user lands on the dashboard.
func (a *App) renderLogin(ctx context.Context) {
	fmt.Fprintln(a.out, "-- Login --")

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		a.logger.Error(ctx, "input error", "error", err)
		return
	}
	password, err := getPassword(a.out)
	if err != nil {
		a.logger.Error(ctx, "input error", "error", err)
		return
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, username, password); err != nil {
		if errors.Is(err, api.ErrInvalidCredentials) {
			fmt.Fprintln(a.out, "Invalid credentials")
		} else {
			fmt.Fprintf(a.out, "Login failed: %s\n", err.Error())
		}
		return
	}

	a.Open(ctx, RouteDashboard)
}
