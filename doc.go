// Package sessionauth is the browser-side session layer of the analysis dashboard.
//
// It decides, on every page load, whether the user already has a backend session,
// signs the user in through a third-party identity widget when there is none, and
// signs them out again. The pieces are:
//
//   - state: the observable session state store,
//   - backend: the HTTP client for the session endpoints, with a mock backend,
//   - widget: the identity widget capability and its loader,
//   - session: the orchestrator driving the state machine,
//   - requests: the request tracking calls made on behalf of the signed-in user,
//   - cli: a terminal front end (cmd/sessionauth).
package sessionauth
