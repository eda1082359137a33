// Package schemas defines the request structures for various operations in the application.
package schemas

// SignupRequest is a struct that represents a signup request
// Username is required and must be between 3 and 20 characters
// Email is required and must be a valid email
// Password is required and must be at least 6 characters
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20,username_validation"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,password_validation"`
}

// LoginRequest is a struct that represents a login request
// Email is required and must be a valid email
// Password is required
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest is a struct that represents a password recovery request
// Email is required and must be a valid email
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest is a struct that represents a password reset request
// Password is the new password, required and must be at least 6 characters
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6,password_validation"`
}

// UpdateProfileRequest is a struct that represents a profile update request
// All fields are optional, absent fields leave the stored value untouched
type UpdateProfileRequest struct {
	FirstName     *string `json:"firstName" validate:"omitempty,min=2,max=50"`
	LastName      *string `json:"lastName" validate:"omitempty,min=2,max=50"`
	Age           *int    `json:"age" validate:"omitempty,min=13,max=120"`
	Gender        *string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Phone         *string `json:"phone" validate:"omitempty,min=10,max=15"`
	Country       *string `json:"country" validate:"omitempty,max=100"`
	City          *string `json:"city" validate:"omitempty,max=100"`
	Address       *string `json:"address" validate:"omitempty,max=200"`
	Qualification *string `json:"qualification" validate:"omitempty,max=100"`
}

// CreateTaskRequest is a struct that represents a create task request
// Title is required and must be less than 100 characters
// DueDate is optional and must be a valid RFC 3339 timestamp if provided
// Priority and Status fall back to their defaults when omitted
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	DueDate     string `json:"dueDate" validate:"omitempty,rfc3339_validation"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
}

// UpdateTaskRequest is a struct that represents a task update request
// All fields are optional, absent fields leave the stored value untouched
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	DueDate     *string `json:"dueDate" validate:"omitempty,rfc3339_validation"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
}
