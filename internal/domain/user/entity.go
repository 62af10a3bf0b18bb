package user

// User represents a user entity in the system.
type User struct {
	ID    int64  `json:"id"`    // ID is assigned by the store and never changes
	Name  string `json:"name"`  // Name is at least 3 characters long
	Email string `json:"email"` // Email is unique across all users
}
