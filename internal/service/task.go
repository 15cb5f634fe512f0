package service

import (
	"context"
	"errors"

	"github.com/taskdeck/taskdeck-go/internal/model"
	"github.com/taskdeck/taskdeck-go/internal/repository"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrTaskNotFound  = errors.New("task not found")
)

// TaskService handles task business logic. The userID argument on every
// method is the authenticated identity from the request context; it is the
// only ownership input, request payloads carry no user reference.
type TaskService struct {
	repo *repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// Create creates a task owned by the authenticated user.
func (s *TaskService) Create(ctx context.Context, userID int64, req model.TaskRequest) (model.TaskResponse, error) {
	if req.Title == "" {
		return model.TaskResponse{}, ErrTitleRequired
	}

	task := &model.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return model.TaskResponse{}, err
	}

	created, err := s.repo.GetByID(ctx, userID, task.ID)
	if err != nil {
		return model.TaskResponse{}, err
	}

	return taskToResponse(created), nil
}

// List returns all tasks owned by the authenticated user.
func (s *TaskService) List(ctx context.Context, userID int64) ([]model.TaskResponse, error) {
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]model.TaskResponse, len(tasks))
	for i := range tasks {
		result[i] = taskToResponse(&tasks[i])
	}
	return result, nil
}

// Get returns a single task owned by the authenticated user.
func (s *TaskService) Get(ctx context.Context, userID, taskID int64) (model.TaskResponse, error) {
	task, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return model.TaskResponse{}, ErrTaskNotFound
		}
		return model.TaskResponse{}, err
	}

	return taskToResponse(task), nil
}

// Update rewrites a task's payload fields. The ownership check and the write
// are separate statements; a concurrent update to the same task can
// interleave between them, which the persistence design accepts.
func (s *TaskService) Update(ctx context.Context, userID, taskID int64, req model.TaskRequest) (model.TaskResponse, error) {
	if req.Title == "" {
		return model.TaskResponse{}, ErrTitleRequired
	}

	task, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return model.TaskResponse{}, ErrTaskNotFound
		}
		return model.TaskResponse{}, err
	}

	task.Title = req.Title
	task.Description = req.Description
	task.Completed = req.Completed

	if err := s.repo.Update(ctx, task); err != nil {
		return model.TaskResponse{}, err
	}

	updated, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		return model.TaskResponse{}, err
	}

	return taskToResponse(updated), nil
}

// Delete removes a task owned by the authenticated user.
func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	err := s.repo.Delete(ctx, userID, taskID)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return ErrTaskNotFound
	}
	return err
}

func taskToResponse(task *model.Task) model.TaskResponse {
	return model.TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
