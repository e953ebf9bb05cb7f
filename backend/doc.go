// Package backend implements the HTTP calls the session orchestrator makes to the
// dashboard backend: the session probe, the credential login and logout.
//
// The session itself is a cookie. The client wraps its round tripper with a cookie
// jar, so the jar can be swapped for a FileJar to keep a session across restarts.
package backend
