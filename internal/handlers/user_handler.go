package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"taskhub/internal/managers"
	"taskhub/internal/schemas"
	"taskhub/internal/utils"
)

// maxProfileImageBytes caps uploaded profile images at 5 MiB.
const maxProfileImageBytes = 5 << 20

type UserHdl interface {
	GetProfile(c *gin.Context)
	UpdateProfile(c *gin.Context)
	UploadProfileImage(c *gin.Context)
	RemoveProfileImage(c *gin.Context)
	ServeUpload(c *gin.Context)
}

type UserHandler struct {
	DatabaseManager managers.DatabaseMgr
	StorageManager  managers.StorageMgr
}

func NewUserHandler(databaseManager managers.DatabaseMgr, storageManager managers.StorageMgr) UserHdl {
	return &UserHandler{
		DatabaseManager: databaseManager,
		StorageManager:  storageManager,
	}
}

// GetProfile returns the authenticated user's full profile.
func (handler *UserHandler) GetProfile(c *gin.Context) {
	identity, ok := utils.GetIdentity(c)
	if !ok {
		utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, errors.New("identity missing"))
		return
	}

	user, err := retrieveUserById(c, handler.DatabaseManager, identity.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.UserNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &user, http.StatusOK)
}

// UpdateProfile applies a partial update to the authenticated user's profile.
// Only fields present in the payload are written.
func (handler *UserHandler) UpdateProfile(c *gin.Context) {
	identity, ok := utils.GetIdentity(c)
	if !ok {
		utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, errors.New("identity missing"))
		return
	}

	updateRequest := c.MustGet(utils.SanitizedPayloadKey.String()).(*schemas.UpdateProfileRequest)

	assignments, args := buildProfileAssignments(updateRequest)
	if len(assignments) == 0 {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, errors.New("no fields to update"))
		return
	}

	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	var err error
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	args = append(args, identity.ID)
	queryString := fmt.Sprintf("UPDATE taskhub_schema.users SET %s WHERE user_id = $%d",
		strings.Join(assignments, ", "), len(args))
	if _, err = tx.Exec(c, queryString, args...); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	user, err := retrieveUserById(c, handler.DatabaseManager, identity.ID)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &user, http.StatusOK)
}

// UploadProfileImage stores a new profile image and replaces any previous one.
// The multipart field is named "image".
func (handler *UserHandler) UploadProfileImage(c *gin.Context) {
	identity, ok := utils.GetIdentity(c)
	if !ok {
		utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, errors.New("identity missing"))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	if fileHeader.Size > maxProfileImageBytes {
		utils.WriteAndLogError(c, schemas.FileTooLarge, http.StatusRequestEntityTooLarge, errors.New("image exceeds size limit"))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		utils.WriteAndLogError(c, schemas.UnsupportedFileType, http.StatusBadRequest, errors.New("only image uploads are accepted"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}
	if len(data) == 0 {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, errors.New("empty image upload"))
		return
	}

	filename := buildImageFilename(identity.ID, fileHeader.Filename)
	if err := handler.StorageManager.Save(c, filename, contentType, data); err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	previous, err := swapProfileImage(c, handler.DatabaseManager, identity.ID, "/api/user/uploads/"+filename)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	// Best effort removal of the replaced image, the new one is already live.
	if previous != "" {
		if removeErr := handler.StorageManager.Remove(c, filepath.Base(previous)); removeErr != nil {
			utils.LogMessageWithFieldsAndError(c, "warn", "Could not remove previous profile image", removeErr)
		}
	}

	user, err := retrieveUserById(c, handler.DatabaseManager, identity.ID)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	response := &schemas.UploadResponseDTO{
		ImageURL: user.ProfileImage,
		User:     user,
	}
	utils.WriteAndLogResponse(c, response, http.StatusOK)
}

// RemoveProfileImage deletes the authenticated user's profile image if one is set.
func (handler *UserHandler) RemoveProfileImage(c *gin.Context) {
	identity, ok := utils.GetIdentity(c)
	if !ok {
		utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, errors.New("identity missing"))
		return
	}

	previous, err := swapProfileImage(c, handler.DatabaseManager, identity.ID, "")
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if previous == "" {
		utils.WriteAndLogError(c, schemas.FileNotFound, http.StatusNotFound, errors.New("no profile image set"))
		return
	}

	if removeErr := handler.StorageManager.Remove(c, filepath.Base(previous)); removeErr != nil {
		utils.LogMessageWithFieldsAndError(c, "warn", "Could not remove profile image from storage", removeErr)
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{Message: "Profile image removed."}, http.StatusOK)
}

// ServeUpload streams a stored profile image back to the client.
func (handler *UserHandler) ServeUpload(c *gin.Context) {
	filename := filepath.Base(c.Param(utils.FilenameKey))

	data, contentType, err := handler.StorageManager.Open(c, filename)
	if err != nil {
		utils.WriteAndLogError(c, schemas.FileNotFound, http.StatusNotFound, err)
		return
	}

	c.Data(http.StatusOK, contentType, data)
}

// buildProfileAssignments turns the set fields of a partial update into SQL assignments.
func buildProfileAssignments(updateRequest *schemas.UpdateProfileRequest) ([]string, []interface{}) {
	var assignments []string
	var args []interface{}

	appendAssignment := func(column string, value interface{}) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if updateRequest.FirstName != nil {
		appendAssignment("first_name", *updateRequest.FirstName)
	}
	if updateRequest.LastName != nil {
		appendAssignment("last_name", *updateRequest.LastName)
	}
	if updateRequest.Age != nil {
		appendAssignment("age", *updateRequest.Age)
	}
	if updateRequest.Gender != nil {
		appendAssignment("gender", *updateRequest.Gender)
	}
	if updateRequest.Phone != nil {
		appendAssignment("phone", *updateRequest.Phone)
	}
	if updateRequest.Country != nil {
		appendAssignment("country", *updateRequest.Country)
	}
	if updateRequest.City != nil {
		appendAssignment("city", *updateRequest.City)
	}
	if updateRequest.Address != nil {
		appendAssignment("address", *updateRequest.Address)
	}
	if updateRequest.Qualification != nil {
		appendAssignment("qualification", *updateRequest.Qualification)
	}

	return assignments, args
}

// buildImageFilename derives a collision-resistant stored name from the owner and upload time.
func buildImageFilename(userId, originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("user_%s_%d-%d%s", userId, time.Now().Unix(), rand.Intn(1_000_000), ext)
}

// swapProfileImage atomically sets the new image URL and returns the previous one.
func swapProfileImage(ctx context.Context, databaseMgr managers.DatabaseMgr, userId, imageURL string) (string, error) {
	queryString := "UPDATE taskhub_schema.users SET profile_picture_url = $1 WHERE user_id = $2 " +
		"RETURNING (SELECT profile_picture_url FROM taskhub_schema.users WHERE user_id = $2)"

	var previous string
	row := databaseMgr.GetPool().QueryRow(ctx, queryString, imageURL, userId)
	if err := row.Scan(&previous); err != nil {
		return "", err
	}

	return previous, nil
}

// retrieveUserById loads the full profile of a user.
func retrieveUserById(ctx context.Context, databaseMgr managers.DatabaseMgr, userId string) (schemas.UserDTO, error) {
	queryString := "SELECT user_id, username, email, first_name, last_name, age, gender, phone, country, " +
		"city, address, qualification, profile_picture_url FROM taskhub_schema.users WHERE user_id = $1"

	var user schemas.User
	var id uuid.UUID

	row := databaseMgr.GetPool().QueryRow(ctx, queryString, userId)
	if err := row.Scan(&id, &user.Username, &user.Email, &user.FirstName, &user.LastName, &user.Age,
		&user.Gender, &user.Phone, &user.Country, &user.City, &user.Address, &user.Qualification,
		&user.ProfileImage); err != nil {
		return schemas.UserDTO{}, err
	}

	user.ID = &id
	return user.DTO(), nil
}
