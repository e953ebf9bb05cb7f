// Package state holds the authentication state machine values and the observable
// store that publishes them to the rest of the application.
package state
