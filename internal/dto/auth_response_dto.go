package dto

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User   UserResponse `json:"user"`
	Access string       `json:"access"`
}

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
