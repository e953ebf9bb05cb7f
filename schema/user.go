package schema

// User is the identity record returned by the backend for an authenticated session.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

// LoginRequest carries the widget credential to the login endpoint.
type LoginRequest struct {
	Token string `json:"token"`
}

// ErrorResponse is the structured error body used by the backend.
type ErrorResponse struct {
	Error string `json:"error"`
}
