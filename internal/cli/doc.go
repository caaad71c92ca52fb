// Package cli is the interactive BankUp terminal client.
//
// It wires the services into a REPL that plays the role of the app screens:
// registration and login with e-mail codes, password recovery, profile
// completion, payers, charges, the dashboard and notifications. After each
// auth step the REPL follows the returned NextStep, so a login goes straight
// to the code prompt and from there to profile completion or home.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
