package user

// UserInput is a payload that has passed the user schema.
// Values of this type are only produced by Validator.Validate.
type UserInput struct {
	Name  string `json:"name" validate:"required,min=3"`
	Email string `json:"email" validate:"required,email"`
}

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	UserInput
}

// UpdateUserRequest represents the request payload for replacing an existing user.
type UpdateUserRequest struct {
	ID int64
	UserInput
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int64
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID    int64
	Name  string
	Email string
}
