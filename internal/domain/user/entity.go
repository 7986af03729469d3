package user

// User represents a user record owned by the external identity store.
// Email is the unique key; the gateway never caches records across requests.
type User struct {
	Email string // Email is the unique identifier for the user
	Name  string // Name is the display name of the user
}
