// Package requests reads and submits tracked analysis requests on behalf of the
// signed-in user. It shares the session cookie jar with the session service.
package requests
