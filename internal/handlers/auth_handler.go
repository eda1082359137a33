// Package handlers implements the HTTP handlers of the API.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"taskhub/internal/managers"
	"taskhub/internal/schemas"
	"taskhub/internal/utils"
)

// resetTokenLifetime is the fixed validity window of a password-reset token.
const resetTokenLifetime = 10 * time.Minute

type AuthHdl interface {
	Signup(c *gin.Context)
	Login(c *gin.Context)
	ForgotPassword(c *gin.Context)
	ResetPassword(c *gin.Context)
}

type AuthHandler struct {
	DatabaseManager managers.DatabaseMgr
	JWTManager      managers.JWTMgr
	MailManager     managers.MailMgr
	PasswordHasher  managers.PasswordHasher
}

func NewAuthHandler(databaseManager managers.DatabaseMgr, jwtManager managers.JWTMgr, mailManager managers.MailMgr,
	passwordHasher managers.PasswordHasher) AuthHdl {
	return &AuthHandler{
		DatabaseManager: databaseManager,
		JWTManager:      jwtManager,
		MailManager:     mailManager,
		PasswordHasher:  passwordHasher,
	}
}

// Signup registers a new user and returns a fresh bearer token together with the created profile.
func (handler *AuthHandler) Signup(c *gin.Context) {
	signupRequest := c.MustGet(utils.SanitizedPayloadKey.String()).(*schemas.SignupRequest)
	email := utils.NormalizeEmail(signupRequest.Email)

	// Deep-check the address before touching the store
	if !utils.GetValidator().VerifyEmail(email) {
		utils.WriteAndLogError(c, schemas.EmailUnreachable, http.StatusBadRequest, errors.New("email unreachable"))
		return
	}

	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	var err error
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	// Check if the username or email is taken
	if err = checkUsernameEmailTaken(c, tx, signupRequest.Username, email); err != nil {
		return
	}

	hashedPassword, err := handler.PasswordHasher.Hash(signupRequest.Password)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	// Insert the user into the database
	userId := uuid.New()
	createdAt := time.Now()

	queryString := "INSERT INTO taskhub_schema.users (user_id, username, email, password, created_at) VALUES ($1, $2, $3, $4, $5)"
	if _, err = tx.Exec(c, queryString, userId, signupRequest.Username, email, hashedPassword, createdAt); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	token, err := handler.JWTManager.GenerateJWT(userId.String(), signupRequest.Username)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	response := &schemas.AuthResponseDTO{
		Token: token,
		User: schemas.UserDTO{
			ID:       userId.String(),
			Username: signupRequest.Username,
			Email:    email,
		},
	}

	utils.WriteAndLogResponse(c, response, http.StatusCreated)
}

// Login authenticates a user by email and password and returns a fresh bearer token.
// Unknown emails and wrong passwords share one generic rejection.
func (handler *AuthHandler) Login(c *gin.Context) {
	loginRequest := c.MustGet(utils.SanitizedPayloadKey.String()).(*schemas.LoginRequest)
	email := utils.NormalizeEmail(loginRequest.Email)

	user, err := retrieveUserByEmail(c, handler.DatabaseManager, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.InvalidCredentials, http.StatusUnauthorized, errors.New("email not registered"))
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err := handler.PasswordHasher.Compare(user.Password, loginRequest.Password); err != nil {
		utils.WriteAndLogError(c, schemas.InvalidCredentials, http.StatusUnauthorized, err)
		return
	}

	token, err := handler.JWTManager.GenerateJWT(user.ID.String(), user.Username)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	response := &schemas.AuthResponseDTO{
		Token: token,
		User:  user.DTO(),
	}

	utils.WriteAndLogResponse(c, response, http.StatusOK)
}

// ForgotPassword starts the password-recovery flow. The hashed token and its
// expiry are persisted before the mail goes out, so a delivered link is always
// redeemable; a failed delivery leaves the token valid until expiry and the
// user may simply request again, which replaces the outstanding pair.
func (handler *AuthHandler) ForgotPassword(c *gin.Context) {
	forgotRequest := c.MustGet(utils.SanitizedPayloadKey.String()).(*schemas.ForgotPasswordRequest)
	email := utils.NormalizeEmail(forgotRequest.Email)

	var userId uuid.UUID
	var username string
	queryString := "SELECT user_id, username FROM taskhub_schema.users WHERE email = $1"
	row := handler.DatabaseManager.GetPool().QueryRow(c, queryString, email)
	if err := row.Scan(&userId, &username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.UserNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	expiresAt := time.Now().Add(resetTokenLifetime)
	queryString = "UPDATE taskhub_schema.users SET reset_token_hash = $1, reset_token_expires_at = $2 WHERE user_id = $3"
	if _, err := handler.DatabaseManager.GetPool().Exec(c, queryString, utils.HashResetToken(token), expiresAt, userId); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err := handler.MailManager.SendPasswordResetMail(email, username, managers.ResetURL(token)); err != nil {
		utils.WriteAndLogError(c, schemas.EmailNotSent, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{Message: "Password reset instructions sent to your email."}, http.StatusOK)
}

// ResetPassword redeems a reset token. The user is located by the recomputed
// digest of the candidate together with an unexpired expiry; misses and
// expiries share one rejection so the response does not reveal which occurred.
// Clearing both reset fields makes the token single-use.
func (handler *AuthHandler) ResetPassword(c *gin.Context) {
	resetRequest := c.MustGet(utils.SanitizedPayloadKey.String()).(*schemas.ResetPasswordRequest)
	tokenDigest := utils.HashResetToken(c.Param(utils.TokenKey))

	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	var err error
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	var userId uuid.UUID
	queryString := "SELECT user_id FROM taskhub_schema.users WHERE reset_token_hash = $1 AND reset_token_expires_at > $2"
	row := tx.QueryRow(c, queryString, tokenDigest, time.Now())
	if err = row.Scan(&userId); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.PasswordResetTokenInvalid, http.StatusBadRequest, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	hashedPassword, err := handler.PasswordHasher.Hash(resetRequest.Password)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	queryString = "UPDATE taskhub_schema.users SET password = $1, reset_token_hash = NULL, reset_token_expires_at = NULL WHERE user_id = $2"
	if _, err = tx.Exec(c, queryString, hashedPassword, userId); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{Message: "Password has been reset successfully. Please login with your new password."}, http.StatusOK)
}

// checkUsernameEmailTaken checks if the username or email is taken and reports which one.
func checkUsernameEmailTaken(c *gin.Context, tx pgx.Tx, username, email string) error {
	queryString := "SELECT username, email FROM taskhub_schema.users WHERE username = $1 OR email = $2"
	rows, err := tx.Query(c, queryString, username, email)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		var foundUsername string
		var foundEmail string

		if err := rows.Scan(&foundUsername, &foundEmail); err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return err
		}

		customErr := schemas.EmailTaken
		if foundUsername == username {
			customErr = schemas.UsernameTaken
		}

		err = errors.New("username or email taken")
		utils.WriteAndLogError(c, customErr, http.StatusConflict, err)
		return err
	}

	return nil
}

// retrieveUserByEmail loads the full user row including the stored password digest for a login attempt.
func retrieveUserByEmail(ctx context.Context, databaseMgr managers.DatabaseMgr, email string) (schemas.User, error) {
	queryString := "SELECT user_id, username, email, password, first_name, last_name, age, gender, phone, country, " +
		"city, address, qualification, profile_picture_url FROM taskhub_schema.users WHERE email = $1"

	var user schemas.User
	var userId uuid.UUID

	row := databaseMgr.GetPool().QueryRow(ctx, queryString, email)
	if err := row.Scan(&userId, &user.Username, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Age, &user.Gender, &user.Phone, &user.Country, &user.City, &user.Address, &user.Qualification,
		&user.ProfileImage); err != nil {
		return schemas.User{}, err
	}

	user.ID = &userId
	return user, nil
}
