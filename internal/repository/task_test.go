package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/taskdeck/taskdeck-go/internal/model"
)

func newTaskMock(t *testing.T) (*TaskRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() unexpected error: %v", err)
	}
	return NewTaskRepository(db), mock, func() { db.Close() }
}

func TestTaskCreate(t *testing.T) {
	repo, mock, done := newTaskMock(t)
	defer done()

	mock.ExpectExec("INSERT INTO tasks").
		WithArgs(int64(1), "buy milk", "two litres", false).
		WillReturnResult(sqlmock.NewResult(11, 1))

	task := &model.Task{UserID: 1, Title: "buy milk", Description: "two litres"}
	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if task.ID != 11 {
		t.Errorf("Create() ID = %d, want 11", task.ID)
	}
}

func TestTaskGetByIDScopedToOwner(t *testing.T) {
	repo, mock, done := newTaskMock(t)
	defer done()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "description", "completed", "created_at", "updated_at"}).
		AddRow(int64(11), int64(1), "buy milk", "two litres", false, now, now)

	// The query must carry both the task ID and the requesting user's ID.
	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE id = (.+) AND user_id =").
		WithArgs(int64(11), int64(1)).
		WillReturnRows(rows)

	task, err := repo.GetByID(context.Background(), 1, 11)
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}
	if task.ID != 11 || task.UserID != 1 {
		t.Errorf("GetByID() returned unexpected task: %+v", task)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTaskGetByIDOtherOwnerIsNotFound(t *testing.T) {
	repo, mock, done := newTaskMock(t)
	defer done()

	// Task 11 exists but belongs to user 1; user 2's compound lookup matches
	// no rows, which must surface exactly like a nonexistent task.
	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE id = (.+) AND user_id =").
		WithArgs(int64(11), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "description", "completed", "created_at", "updated_at"}))

	_, err := repo.GetByID(context.Background(), 2, 11)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("GetByID() error = %v, want ErrTaskNotFound", err)
	}
}

func TestTaskListByUser(t *testing.T) {
	repo, mock, done := newTaskMock(t)
	defer done()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "description", "completed", "created_at", "updated_at"}).
		AddRow(int64(12), int64(1), "second", "", true, now, now).
		AddRow(int64(11), int64(1), "first", "", false, now, now)

	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE user_id =").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	tasks, err := repo.ListByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByUser() unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("ListByUser() returned %d tasks, want 2", len(tasks))
	}
	for _, task := range tasks {
		if task.UserID != 1 {
			t.Errorf("ListByUser() returned task owned by user %d", task.UserID)
		}
	}
}

func TestTaskUpdate(t *testing.T) {
	repo, mock, done := newTaskMock(t)
	defer done()

	mock.ExpectExec("UPDATE tasks SET").
		WithArgs("buy milk", "four litres", true, int64(11), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	task := &model.Task{ID: 11, UserID: 1, Title: "buy milk", Description: "four litres", Completed: true}
	if err := repo.Update(context.Background(), task); err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTaskDelete(t *testing.T) {
	repo, mock, done := newTaskMock(t)
	defer done()

	mock.ExpectExec("DELETE FROM tasks WHERE id = (.+) AND user_id =").
		WithArgs(int64(11), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 1, 11); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
}

func TestTaskDeleteNotOwnedIsNotFound(t *testing.T) {
	repo, mock, done := newTaskMock(t)
	defer done()

	mock.ExpectExec("DELETE FROM tasks WHERE id = (.+) AND user_id =").
		WithArgs(int64(11), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 2, 11)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Delete() error = %v, want ErrTaskNotFound", err)
	}
}
