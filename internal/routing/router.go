// Package routing wires the HTTP routes of the API to their handlers.
package routing

import (
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"taskhub/internal/handlers"
	"taskhub/internal/managers"
	"taskhub/internal/middleware"
	"taskhub/internal/schemas"
	"taskhub/internal/utils"
)

const (
	apiVersion = "1.0.0"
	apiName    = "TaskHub API"
)

// InitRouter initializes the router and all its routes.
func InitRouter(databaseMgr managers.DatabaseMgr, mailMgr managers.MailMgr, jwtMgr managers.JWTMgr,
	storageMgr managers.StorageMgr, passwordHasher managers.PasswordHasher) *gin.Engine {
	if os.Getenv("ENVIRONMENT") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.InjectTrace())
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}))
	router.Use(middleware.SanitizePath())
	router.Use(middleware.LogRequest())

	authHandler := handlers.NewAuthHandler(databaseMgr, jwtMgr, mailMgr, passwordHasher)
	userHandler := handlers.NewUserHandler(databaseMgr, storageMgr)
	taskHandler := handlers.NewTaskHandler(databaseMgr)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, &schemas.MetadataDTO{ApiVersion: apiVersion, ApiName: apiName})
	})
	router.GET("/health", func(c *gin.Context) {
		if err := databaseMgr.GetPool().Ping(c); err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusServiceUnavailable, err)
			return
		}
		c.JSON(http.StatusOK, &schemas.MessageDTO{Message: "ok"})
	})

	authRouter := router.Group("/api/auth")
	authRouter.POST("/signup",
		middleware.ValidateAndSanitizeStruct(func() interface{} { return &schemas.SignupRequest{} }),
		authHandler.Signup)
	authRouter.POST("/login",
		middleware.ValidateAndSanitizeStruct(func() interface{} { return &schemas.LoginRequest{} }),
		authHandler.Login)
	authRouter.POST("/forgot-password",
		middleware.ValidateAndSanitizeStruct(func() interface{} { return &schemas.ForgotPasswordRequest{} }),
		authHandler.ForgotPassword)
	authRouter.POST("/reset-password/:"+utils.TokenKey,
		middleware.ValidateAndSanitizeStruct(func() interface{} { return &schemas.ResetPasswordRequest{} }),
		authHandler.ResetPassword)

	userRouter := router.Group("/api/user")
	userRouter.GET("/uploads/:"+utils.FilenameKey, userHandler.ServeUpload)
	userRouter.Use(middleware.RequireAuth(databaseMgr, jwtMgr))
	userRouter.GET("/profile", userHandler.GetProfile)
	userRouter.PUT("/profile",
		middleware.ValidateAndSanitizeStruct(func() interface{} { return &schemas.UpdateProfileRequest{} }),
		userHandler.UpdateProfile)
	userRouter.POST("/profile/image", userHandler.UploadProfileImage)
	userRouter.DELETE("/profile/image", userHandler.RemoveProfileImage)

	taskRouter := router.Group("/api/tasks")
	taskRouter.Use(middleware.RequireAuth(databaseMgr, jwtMgr))
	taskRouter.POST("",
		middleware.ValidateAndSanitizeStruct(func() interface{} { return &schemas.CreateTaskRequest{} }),
		taskHandler.CreateTask)
	taskRouter.GET("", taskHandler.ListTasks)
	taskRouter.GET("/:"+utils.TaskIdKey, taskHandler.GetTask)
	taskRouter.PUT("/:"+utils.TaskIdKey,
		middleware.ValidateAndSanitizeStruct(func() interface{} { return &schemas.UpdateTaskRequest{} }),
		taskHandler.UpdateTask)
	taskRouter.DELETE("/:"+utils.TaskIdKey, taskHandler.DeleteTask)

	return router
}
