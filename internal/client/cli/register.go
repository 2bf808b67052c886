package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shopkeeper/internal/client/api"
	"github.com/dmitrijs2005/shopkeeper/internal/client/models"
	"github.com/dmitrijs2005/shopkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// renderRegister runs the registration form. Field-level problems reported
// by the server are printed next to the field they belong to.
func (a *App) renderRegister(ctx context.Context) {
	fmt.Fprintln(a.out, "-- Register --")

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		a.logger.Error(ctx, "input error", "error", err)
		return
	}
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

	if err := a.auth.Register(ctx, email, username, password); err != nil {
		var fe models.FieldErrors
		switch {
		case errors.As(err, &fe):
			for _, e := range fe {
				fmt.Fprintf(a.out, "  %s: %s\n", e.Field, e.Message)
			}
		case errors.Is(err, api.ErrAlreadyExists):
			fmt.Fprintln(a.out, "An account with these details already exists")
		default:
			fmt.Fprintf(a.out, "Registration failed: %s\n", err.Error())
		}
		return
	}

	fmt.Fprintln(a.out, "Registered. Open /login to sign in.")
}
