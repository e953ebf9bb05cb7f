// Package session orchestrates the browser-side session lifecycle.
//
// On Start the Service probes the backend for an existing session. When there is
// none it waits for the identity widget, configures it, and exchanges the credential
// the widget delivers for a backend session. Every transition is written to a shared
// state.Store, which notifies subscribers synchronously and in order.
//
//	store := state.NewStore()
//	client, _ := backend.New("http://localhost:5000")
//	service := session.New(store, client, widget.NewLoader(locator), session.WithClientID("abc"))
//	current := service.Start(ctx)
package session
