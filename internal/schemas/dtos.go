package schemas

// ErrorDTO is a struct that represents an error response
// Error is the custom error, see CustomError
type ErrorDTO struct {
	Error CustomError `json:"error"`
}

// MetadataDTO is a struct that represents the version response of the API
type MetadataDTO struct {
	ApiVersion string `json:"apiVersion"`
	ApiName    string `json:"apiName"`
}

// UserDTO is a struct that represents a user response
// It never carries the password hash or any reset-token state
type UserDTO struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Age           int    `json:"age"`
	Gender        string `json:"gender"`
	Phone         string `json:"phone"`
	Country       string `json:"country"`
	City          string `json:"city"`
	Address       string `json:"address"`
	Qualification string `json:"qualification"`
	ProfileImage  string `json:"profileImage"`
}

// AuthResponseDTO is a struct that represents a successful signup or login response
// Token is the bearer token, User is the authenticated user
type AuthResponseDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// MessageDTO is a struct that represents a plain confirmation response
type MessageDTO struct {
	Message string `json:"message"`
}

// UploadResponseDTO is a struct that represents a profile image upload response
// ImageURL is the path under which the image is served
type UploadResponseDTO struct {
	ImageURL string  `json:"imageUrl"`
	User     UserDTO `json:"user"`
}

// TaskDTO is a struct that represents a task response
type TaskDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate,omitempty"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// PaginatedResponse is a struct that wraps a subset of records with pagination details
type PaginatedResponse struct {
	Records    interface{} `json:"records"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination is a struct that represents the pagination details of a paginated response
type Pagination struct {
	Offset  int `json:"offset"`
	Limit   int `json:"limit"`
	Records int `json:"records"`
}
