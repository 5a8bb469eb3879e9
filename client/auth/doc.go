// Package auth implements the credential side of the session lifecycle:
// logging in, logging out and inspecting whether a session is held.
package auth
