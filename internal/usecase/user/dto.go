package user

// LookupRequest represents the request payload for looking up a user by email.
type LookupRequest struct {
	Email string `validate:"required,email"`
}

// CreateRequest represents the request payload for creating a new user.
type CreateRequest struct {
	Email string `validate:"required,email"`
	Name  string `validate:"required,min=1,max=100"`
}

// Response represents a user record returned to the caller.
type Response struct {
	Email string
	Name  string
}
