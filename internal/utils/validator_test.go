package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskhub/internal/schemas"
)

func TestPasswordValidation(t *testing.T) {
	v := GetValidator()

	testCases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"ValidPassword", "test.Password123", true},
		{"ShortButComplete", "Secr3t!", true},
		{"NoUppercase", "test.password123", false},
		{"NoNumber", "test.Password", false},
		{"NoSpecialChar", "testPassword123", false},
		{"NonAscii", "test.Pässword123", false},
		{"TooShort", "T3s!", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			request := schemas.SignupRequest{
				Username: "testUser",
				Email:    "test@example.com",
				Password: tc.password,
			}

			err := v.Validate.Struct(request)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestUsernameValidation(t *testing.T) {
	v := GetValidator()

	testCases := []struct {
		name     string
		username string
		valid    bool
	}{
		{"Simple", "testUser", true},
		{"WithSeparators", "test.user-1_a", true},
		{"WithSpace", "test user", false},
		{"WithHTML", "<b>user</b>", false},
		{"TooShort", "ab", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			request := schemas.SignupRequest{
				Username: tc.username,
				Email:    "test@example.com",
				Password: "test.Password123",
			}

			err := v.Validate.Struct(request)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSanitizeData(t *testing.T) {
	v := GetValidator()

	city := "<script>alert(1)</script>Berlin"
	request := schemas.UpdateProfileRequest{City: &city}

	err := v.SanitizeData(&request)
	assert.NoError(t, err)
	assert.Equal(t, "Berlin", *request.City)

	createRequest := schemas.CreateTaskRequest{
		Title:       "Buy <img src=x onerror=alert(1)> milk",
		Description: "plain text stays",
	}
	err = v.SanitizeData(&createRequest)
	assert.NoError(t, err)
	assert.Equal(t, "Buy  milk", createRequest.Title)
	assert.Equal(t, "plain text stays", createRequest.Description)
}
