// Package schemas defines the data structures
package schemas

import (
	"time"

	"github.com/google/uuid"
)

// User represents the data model for a user in the system.
// The password column always holds a bcrypt digest, never the plaintext, and
// at most one (ResetTokenHash, ResetTokenExpiresAt) pair is kept per user.
type User struct {
	ID                  *uuid.UUID `json:"id"`                     // Unique identifier for the user.
	Username            string     `json:"username"`               // Username of the user.
	Email               string     `json:"email"`                  // Lowercased email address of the user.
	Password            string     `json:"-"`                      // Password hash of the user.
	FirstName           string     `json:"first_name"`             // Optional first name.
	LastName            string     `json:"last_name"`              // Optional last name.
	Age                 int        `json:"age"`                    // Optional age.
	Gender              string     `json:"gender"`                 // Optional gender.
	Phone               string     `json:"phone"`                  // Optional phone number.
	Country             string     `json:"country"`                // Optional country.
	City                string     `json:"city"`                   // Optional city.
	Address             string     `json:"address"`                // Optional address.
	Qualification       string     `json:"qualification"`          // Optional qualification.
	ProfileImage        string     `json:"profile_image"`          // Stored filename of the profile image.
	ResetTokenHash      string     `json:"-"`                      // SHA-256 digest of the outstanding reset token.
	ResetTokenExpiresAt *time.Time `json:"-"`                      // Expiry of the outstanding reset token.
	CreatedAt           *time.Time `json:"created_at"`             // Timestamp when the user was created.
}

// Task represents the data model for a task owned by a user.
type Task struct {
	ID          *uuid.UUID `json:"id"`          // Unique identifier for the task.
	UserID      *uuid.UUID `json:"user_id"`     // Identifier of the owning user.
	Title       string     `json:"title"`       // Title of the task.
	Description string     `json:"description"` // Optional description.
	DueDate     *time.Time `json:"due_date"`    // Optional due date.
	Priority    string     `json:"priority"`    // One of low, medium, high.
	Status      string     `json:"status"`      // One of pending, in-progress, completed.
	CreatedAt   *time.Time `json:"created_at"`  // Timestamp when the task was created.
	UpdatedAt   *time.Time `json:"updated_at"`  // Timestamp of the last update.
}

// DTO converts the stored user row into its response shape.
func (u *User) DTO() UserDTO {
	dto := UserDTO{
		Username:      u.Username,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Age:           u.Age,
		Gender:        u.Gender,
		Phone:         u.Phone,
		Country:       u.Country,
		City:          u.City,
		Address:       u.Address,
		Qualification: u.Qualification,
		ProfileImage:  u.ProfileImage,
	}
	if u.ID != nil {
		dto.ID = u.ID.String()
	}
	return dto
}

// DTO converts the stored task row into its response shape.
func (t *Task) DTO() TaskDTO {
	dto := TaskDTO{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
	}
	if t.ID != nil {
		dto.ID = t.ID.String()
	}
	if t.DueDate != nil {
		dto.DueDate = t.DueDate.Format(time.RFC3339)
	}
	if t.CreatedAt != nil {
		dto.CreatedAt = t.CreatedAt.Format(time.RFC3339)
	}
	if t.UpdatedAt != nil {
		dto.UpdatedAt = t.UpdatedAt.Format(time.RFC3339)
	}
	return dto
}
