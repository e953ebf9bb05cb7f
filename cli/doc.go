// Package cli runs the session flow from a terminal. The terminal stands in for the
// identity widget: the credential comes from a flag or the first line of stdin.
package cli
