// Package backoffice is the Go client SDK for the brightcms back-office
// REST API. It wires a session-aware HTTP transport (bearer credentials,
// transparent single refresh-and-retry on 401), a durable access-token
// store, and one collection state container per resource family: content,
// services, users and contacts.
//
// Typical usage:
//
//	config := &backoffice.Config{BaseURL: "https://api.example.com/api"}
//	bo, err := backoffice.New(config)
//	if err != nil { ... }
//	if _, err = bo.Auth.Login(ctx, email, password); err != nil { ... }
//	if err = bo.Content.FetchAll(ctx); err != nil { ... }
//	for _, item := range bo.Content.Items() { ... }
package backoffice
