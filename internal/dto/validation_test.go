package dto

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-task-api/internal/models"
)

func newValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterValidators(v))
	return v
}

func validTask() CreateTaskRequest {
	return CreateTaskRequest{
		Title:     "Login page",
		DueDate:   time.Now().AddDate(0, 0, 7),
		Priority:  models.TaskPriorityHigh,
		ProjectID: uuid.New(),
	}
}

func TestCreateTaskRequest_Valid(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(validTask()))
}

func TestCreateTaskRequest_Invalid(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name   string
		mutate func(r *CreateTaskRequest)
		field  string
		want   string
	}{
		{"missing title", func(r *CreateTaskRequest) { r.Title = "" }, "title", "The field 'title' is required."},
		{"long title", func(r *CreateTaskRequest) { r.Title = string(make([]byte, 201)) }, "title", "The field 'title' must be no longer than 200 characters."},
		{"unknown priority", func(r *CreateTaskRequest) { r.Priority = "Urgent" }, "priority", "The field 'priority' must be one of Low, Medium, High."},
		{"missing due date", func(r *CreateTaskRequest) { r.DueDate = time.Time{} }, "due_date", "The field 'due_date' is required."},
		{"missing project", func(r *CreateTaskRequest) { r.ProjectID = uuid.Nil }, "project_id", "The field 'project_id' is required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validTask()
			tt.mutate(&req)

			details := ValidationDetails(v.Struct(req))
			require.Contains(t, details, tt.field)
			assert.Equal(t, tt.want, details[tt.field])
		})
	}
}

func TestUpdateTaskRequest_OptionalFields(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(UpdateTaskRequest{UserID: uuid.New()}))

	empty := ""
	bad := models.TaskStatus("Done")
	details := ValidationDetails(v.Struct(UpdateTaskRequest{
		UserID: uuid.New(),
		Title:  &empty,
		Status: &bad,
	}))
	assert.Equal(t, "The field 'title' must be at least 1 characters long.", details["title"])
	assert.Equal(t, "The field 'status' must be one of Pending, InProgress, Completed.", details["status"])
}

func TestCreateCommentRequest_ContentLimit(t *testing.T) {
	v := newValidator(t)
	req := CreateCommentRequest{
		TaskID:  uuid.New(),
		UserID:  uuid.New(),
		Content: string(make([]byte, 5001)),
	}

	details := ValidationDetails(v.Struct(req))

	assert.Equal(t, "The field 'content' must be no longer than 5000 characters.", details["content"])
}

func TestValidationDetails_OtherErrors(t *testing.T) {
	assert.Nil(t, ValidationDetails(assert.AnError))
}
