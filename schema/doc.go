// Package schema defines the wire types exchanged with the dashboard backend and the
// error taxonomy shared by the session components.
package schema
