// Package widget defines the third-party identity widget capability and the loader
// that waits for it to become available.
//
// The widget is supplied by the host environment at an unpredictable time. The Loader
// polls a Locator until the capability is present, then configures it with the client
// id and a credential callback, with automatic account selection disabled.
package widget
