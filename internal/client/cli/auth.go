package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/arondight/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password, creates the account and
// logs in with the returned token. The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.Register(ctx, name, email, password)
	if err != nil {
		fmt.Fprintln(a.out, "Registration failed:", err)
		return err
	}

	if err := a.setSession(token); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered and logged in.")
	return nil
}

// Login prompts for credentials and stores the session token on success.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintln(a.out, "Login unsuccessful:", err)
		return err
	}

	if err := a.setSession(token); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Probe calls the token-protected route with the current token, if any.
func (a *App) Probe(ctx context.Context) error {
	msg, err := a.api.Probe(ctx, a.token)
	if err != nil {
		fmt.Fprintln(a.out, "Access denied:", err)
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// Logout discards the session token. Tokens are not revocable, so nothing
// is sent to the server.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errors.New("not logged in")
	}
	a.clearSession()
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
