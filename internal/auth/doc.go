// Package auth implements the admin gate of the API.
//
// There is exactly one credential: the configured admin password. A client
// proves knowledge of it by sending it back verbatim in the admin cookie,
// which POST /auth/login sets. No sessions are stored, so there is nothing
// to rotate or revoke short of changing the password.
//
// Which routes need the gate is declared on the route table, see
// router.Route.Auth.
package auth
