package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"taskhub/internal/managers"
	"taskhub/internal/schemas"
	"taskhub/internal/utils"
)

type TaskHdl interface {
	CreateTask(c *gin.Context)
	ListTasks(c *gin.Context)
	GetTask(c *gin.Context)
	UpdateTask(c *gin.Context)
	DeleteTask(c *gin.Context)
}

type TaskHandler struct {
	DatabaseManager managers.DatabaseMgr
}

func NewTaskHandler(databaseManager managers.DatabaseMgr) TaskHdl {
	return &TaskHandler{
		DatabaseManager: databaseManager,
	}
}

// CreateTask inserts a new task owned by the authenticated user.
func (handler *TaskHandler) CreateTask(c *gin.Context) {
	identity, ok := utils.GetIdentity(c)
	if !ok {
		utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, errors.New("identity missing"))
		return
	}

	createRequest := c.MustGet(utils.SanitizedPayloadKey.String()).(*schemas.CreateTaskRequest)

	priority := createRequest.Priority
	if priority == "" {
		priority = "medium"
	}
	status := createRequest.Status
	if status == "" {
		status = "pending"
	}

	var dueDate *time.Time
	if createRequest.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, createRequest.DueDate)
		if err != nil {
			utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
			return
		}
		dueDate = &parsed
	}

	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	var err error
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	taskId := uuid.New()
	now := time.Now()

	queryString := "INSERT INTO taskhub_schema.tasks (task_id, user_id, title, description, due_date, priority, status, created_at, updated_at) " +
		"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)"
	if _, err = tx.Exec(c, queryString, taskId, identity.ID, createRequest.Title, createRequest.Description,
		dueDate, priority, status, now); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	task := schemas.TaskDTO{
		ID:          taskId.String(),
		Title:       createRequest.Title,
		Description: createRequest.Description,
		Priority:    priority,
		Status:      status,
		CreatedAt:   now.Format(time.RFC3339),
		UpdatedAt:   now.Format(time.RFC3339),
	}
	if dueDate != nil {
		task.DueDate = dueDate.Format(time.RFC3339)
	}

	utils.WriteAndLogResponse(c, &task, http.StatusCreated)
}

// ListTasks returns the authenticated user's tasks, newest first, with pagination details.
// An optional status query parameter narrows the listing.
func (handler *TaskHandler) ListTasks(c *gin.Context) {
	identity, ok := utils.GetIdentity(c)
	if !ok {
		utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, errors.New("identity missing"))
		return
	}

	offset, limit := utils.ParsePaginationParams(c)

	queryString := "SELECT task_id, title, description, due_date, priority, status, created_at, updated_at " +
		"FROM taskhub_schema.tasks WHERE user_id = $1"
	args := []interface{}{identity.ID}

	if status := c.Query("status"); status != "" {
		args = append(args, status)
		queryString += fmt.Sprintf(" AND status = $%d", len(args))
	}
	queryString += " ORDER BY created_at DESC"

	rows, err := handler.DatabaseManager.GetPool().Query(c, queryString, args...)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	tasks := make([]schemas.TaskDTO, 0)
	for rows.Next() {
		task, err := scanTaskRow(rows)
		if err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}
		tasks = append(tasks, task)
	}

	utils.SendPaginatedResponse(c, tasks, offset, limit, len(tasks))
}

// GetTask returns a single task owned by the authenticated user.
func (handler *TaskHandler) GetTask(c *gin.Context) {
	identity, ok := utils.GetIdentity(c)
	if !ok {
		utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, errors.New("identity missing"))
		return
	}

	taskId := c.Param(utils.TaskIdKey)

	queryString := "SELECT task_id, title, description, due_date, priority, status, created_at, updated_at " +
		"FROM taskhub_schema.tasks WHERE task_id = $1 AND user_id = $2"
	row := handler.DatabaseManager.GetPool().QueryRow(c, queryString, taskId, identity.ID)

	task, err := scanTaskRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.TaskNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &task, http.StatusOK)
}

// UpdateTask applies a partial update to a task owned by the authenticated user.
func (handler *TaskHandler) UpdateTask(c *gin.Context) {
	identity, ok := utils.GetIdentity(c)
	if !ok {
		utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, errors.New("identity missing"))
		return
	}

	taskId := c.Param(utils.TaskIdKey)
	updateRequest := c.MustGet(utils.SanitizedPayloadKey.String()).(*schemas.UpdateTaskRequest)

	assignments, args, parseErr := buildTaskAssignments(updateRequest)
	if parseErr != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, parseErr)
		return
	}
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

	args = append(args, taskId, identity.ID)
	queryString := fmt.Sprintf("UPDATE taskhub_schema.tasks SET %s, updated_at = now() WHERE task_id = $%d AND user_id = $%d",
		strings.Join(assignments, ", "), len(args)-1, len(args))

	result, err := tx.Exec(c, queryString, args...)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	if result.RowsAffected() == 0 {
		err = errors.New("task not found")
		utils.WriteAndLogError(c, schemas.TaskNotFound, http.StatusNotFound, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	handler.GetTask(c)
}

// DeleteTask removes a task owned by the authenticated user.
func (handler *TaskHandler) DeleteTask(c *gin.Context) {
	identity, ok := utils.GetIdentity(c)
	if !ok {
		utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, errors.New("identity missing"))
		return
	}

	taskId := c.Param(utils.TaskIdKey)

	tx := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	var err error
	defer func() { utils.RollbackTransaction(c, tx, err) }()

	queryString := "DELETE FROM taskhub_schema.tasks WHERE task_id = $1 AND user_id = $2"
	result, err := tx.Exec(c, queryString, taskId, identity.ID)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	if result.RowsAffected() == 0 {
		err = errors.New("task not found")
		utils.WriteAndLogError(c, schemas.TaskNotFound, http.StatusNotFound, err)
		return
	}

	if err = utils.CommitTransaction(c, tx); err != nil {
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{Message: "Task deleted."}, http.StatusOK)
}

// buildTaskAssignments turns the set fields of a partial task update into SQL assignments.
func buildTaskAssignments(updateRequest *schemas.UpdateTaskRequest) ([]string, []interface{}, error) {
	var assignments []string
	var args []interface{}

	appendAssignment := func(column string, value interface{}) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if updateRequest.Title != nil {
		appendAssignment("title", *updateRequest.Title)
	}
	if updateRequest.Description != nil {
		appendAssignment("description", *updateRequest.Description)
	}
	if updateRequest.DueDate != nil {
		if *updateRequest.DueDate == "" {
			appendAssignment("due_date", nil)
		} else {
			parsed, err := time.Parse(time.RFC3339, *updateRequest.DueDate)
			if err != nil {
				return nil, nil, err
			}
			appendAssignment("due_date", parsed)
		}
	}
	if updateRequest.Priority != nil {
		appendAssignment("priority", *updateRequest.Priority)
	}
	if updateRequest.Status != nil {
		appendAssignment("status", *updateRequest.Status)
	}

	return assignments, args, nil
}

// scanTaskRow scans one task row into its response shape.
func scanTaskRow(row pgx.Row) (schemas.TaskDTO, error) {
	var task schemas.Task
	var taskId uuid.UUID
	var createdAt, updatedAt time.Time

	if err := row.Scan(&taskId, &task.Title, &task.Description, &task.DueDate, &task.Priority, &task.Status,
		&createdAt, &updatedAt); err != nil {
		return schemas.TaskDTO{}, err
	}

	task.ID = &taskId
	task.CreatedAt = &createdAt
	task.UpdatedAt = &updatedAt
	return task.DTO(), nil
}
