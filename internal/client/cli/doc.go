// Package cli provides the interactive command-line client for the account
// server.
//
// Commands: register, login, probe (call the token-protected route), show,
// update and delete (the logged-in account), logout, help and exit. The
// session token is kept in memory only; logout discards it.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
