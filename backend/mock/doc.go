// Package mock provides an in-memory dashboard backend that facilitates testing
// of the session client without a real server.
//
// The service also acts as the identity issuer: IssueCredential returns a signed
// RS256 credential that the login endpoint verifies, mimicking the widget and the
// server-side token verification.
package mock
