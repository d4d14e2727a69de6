package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/arondight/internal/client/api"
	"github.com/dmitrijs2005/arondight/internal/common"
)

var errNotLoggedIn = errors.New("not logged in")

// Show prints the logged-in account with its cart and past orders.
func (a *App) Show(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	u, err := a.api.GetUser(ctx, a.token, a.identity.ID)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}

	fmt.Fprintf(a.out, "ID:     %s\n", u.ID)
	fmt.Fprintf(a.out, "Name:   %s\n", u.Name)
	fmt.Fprintf(a.out, "Email:  %s\n", u.Email)
	if u.Cart != nil {
		fmt.Fprintf(a.out, "Cart:   %s\n", u.Cart.ID)
	}
	fmt.Fprintf(a.out, "Orders: %d\n", len(u.PastOrders))
	for _, o := range u.PastOrders {
		fmt.Fprintf(a.out, "  - %s (%s)\n", o.ID, o.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

// Update asks for a new name, email and password; empty answers keep the
// current value. The refreshed token replaces the session token.
func (a *App) Update(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	var req api.UpdateRequest

	name, err := getSimpleText(a.reader, "New name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if name != "" {
		req.Name = &name
	}

	email, err := getSimpleText(a.reader, "New email (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if email != "" {
		req.Email = &email
	}

	change, err := confirm(a.reader, "Change password?", a.out)
	if err != nil {
		return err
	}
	if change {
		pw, err := getPassword(a.out)
		if err != nil {
			return err
		}
		s := string(pw)
		common.WipeByteArray(pw)
		req.Password = &s
	}

	if req.Name == nil && req.Email == nil && req.Password == nil {
		fmt.Fprintln(a.out, "Nothing to update.")
		return nil
	}

	token, err := a.api.UpdateUser(ctx, a.token, a.identity.ID, req)
	if err != nil {
		fmt.Fprintln(a.out, "Update failed:", err)
		return err
	}

	if err := a.setSession(token); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account updated.")
	return nil
}

// Delete removes the logged-in account after confirmation and ends the
// session.
func (a *App) Delete(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	ok, err := confirm(a.reader, "Delete your account permanently?", a.out)
	if err != nil || !ok {
		return err
	}

	msg, err := a.api.DeleteUser(ctx, a.token, a.identity.ID)
	if err != nil {
		fmt.Fprintln(a.out, "Delete failed:", err)
		return err
	}

	a.clearSession()
	fmt.Fprintln(a.out, msg)
	return nil
}
