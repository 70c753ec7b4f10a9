package models

// ErrorResponse is the single client-visible failure shape. Internal
// diagnostic detail stays in the server logs.
type ErrorResponse struct {
	Error string `json:"error"`
}
