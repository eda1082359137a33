// Package schemas defines the data structures exchanged between the API and its clients.
package schemas

// CustomError is a struct that represents a custom error
// Code is the unique error code
// Message is the human-readable error message
type CustomError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var (
	// BadRequest is returned when the request body or parameters fail validation.
	BadRequest = &CustomError{
		Code:    "ERR-001",
		Message: "The request body is invalid. Please check the request body and try again.",
	}
	// UsernameTaken is returned when the username is already registered.
	UsernameTaken = &CustomError{
		Code:    "ERR-002",
		Message: "The username is already taken. Please try another username.",
	}
	// EmailTaken is returned when the email is already registered.
	EmailTaken = &CustomError{
		Code:    "ERR-003",
		Message: "The email is already registered. Please try another email.",
	}
	// UserNotFound is returned when no user matches the given identifier.
	UserNotFound = &CustomError{
		Code:    "ERR-004",
		Message: "No user found with this email address.",
	}
	// InvalidCredentials is returned on login failure. The same message covers
	// unknown emails and wrong passwords so the response does not reveal which
	// check failed.
	InvalidCredentials = &CustomError{
		Code:    "ERR-005",
		Message: "Invalid credentials.",
	}
	// Unauthorized is returned when the bearer token is missing, malformed,
	// expired or refers to a user that no longer exists.
	Unauthorized = &CustomError{
		Code:    "ERR-006",
		Message: "The request is unauthorized. Please login to your account.",
	}
	// PasswordResetTokenInvalid covers both unknown and expired reset tokens.
	PasswordResetTokenInvalid = &CustomError{
		Code:    "ERR-007",
		Message: "Invalid or expired token. Please request a new password reset link.",
	}
	// EmailNotSent is returned when the mail transport fails.
	EmailNotSent = &CustomError{
		Code:    "ERR-008",
		Message: "The email could not be sent. Please try again later.",
	}
	// DatabaseError is returned on any storage failure.
	DatabaseError = &CustomError{
		Code:    "ERR-009",
		Message: "A database error occurred. Please try again later.",
	}
	// InternalServerError is the generic catch-all failure.
	InternalServerError = &CustomError{
		Code:    "ERR-010",
		Message: "An internal error occurred. Please try again later.",
	}
	// TaskNotFound is returned when a task does not exist or belongs to another user.
	TaskNotFound = &CustomError{
		Code:    "ERR-011",
		Message: "No task found with this id.",
	}
	// FileTooLarge is returned when an uploaded image exceeds the size limit.
	FileTooLarge = &CustomError{
		Code:    "ERR-012",
		Message: "The uploaded file exceeds the maximum allowed size of 5 MB.",
	}
	// UnsupportedFileType is returned when an upload is not an image.
	UnsupportedFileType = &CustomError{
		Code:    "ERR-013",
		Message: "Only image files are allowed.",
	}
	// FileNotFound is returned when a stored image cannot be located.
	FileNotFound = &CustomError{
		Code:    "ERR-014",
		Message: "No file found with this name.",
	}
	// EmailUnreachable is returned when the deep email check cannot verify the address.
	EmailUnreachable = &CustomError{
		Code:    "ERR-015",
		Message: "The email address appears to be unreachable. Please use a different email.",
	}
)
