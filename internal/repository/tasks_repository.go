package repository

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/mzhn/levelup/internal/error_values"
	"github.com/mzhn/levelup/pkg/cleanup"
	"github.com/mzhn/levelup/pkg/entity"
)

type TasksRepository struct {
	conn PgConnection
}

func NewTasksRepo(cfg DBConfig) *TasksRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for tasksRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for tasksRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &TasksRepository{
		conn: pool,
	}
}

func NewTasksRepoWithConn(conn PgConnection) *TasksRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for tasksRepo: " + err.Error())
	}
	return &TasksRepository{
		conn: conn,
	}
}

func (tr *TasksRepository) Create(ctx context.Context, task *entity.Task) (int64, error) {
	var id int64
	row := tr.conn.QueryRow(ctx, `INSERT INTO tasks (user_id, title, description, duration, points, is_default) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;`,
		task.UserID,
		task.Title,
		task.Description,
		task.Duration,
		task.Points,
		task.IsDefault,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return 0, errorvalues.ErrUserNotFound
			}
		}
		return 0, errors.New("creating task db error: " + err.Error())
	}
	return id, nil
}

func (tr *TasksRepository) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	var task entity.Task
	task.ID = id
	row := tr.conn.QueryRow(ctx, `SELECT user_id, title, description, duration, points, is_completed, is_default, created_at FROM tasks WHERE id = $1;`, id)
	if err := row.Scan(&task.UserID, &task.Title, &task.Description, &task.Duration, &task.Points, &task.IsCompleted, &task.IsDefault, &task.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrTaskNotFound
		}
		return nil, errors.New("getting task by id error: " + err.Error())
	}
	return &task, nil
}

func (tr *TasksRepository) GetByUserID(ctx context.Context, uid int64) ([]*entity.Task, error) {
	tasks := make([]*entity.Task, 0)
	rows, err := tr.conn.Query(ctx, `SELECT id, user_id, title, description, duration, points, is_completed, is_default, created_at
		FROM tasks WHERE user_id = $1 ORDER BY id;`, uid)
	if err != nil {
		return nil, errors.New("getting tasks by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		t := entity.Task{}
		err = rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Duration, &t.Points, &t.IsCompleted, &t.IsDefault, &t.CreatedAt)
		if err != nil {
			return nil, errors.New("unmarhalling task error: " + err.Error())
		}
		tasks = append(tasks, &t)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return tasks, nil
}

func (tr *TasksRepository) SetCompletion(ctx context.Context, id int64, isCompleted bool) error {
	ct, err := tr.conn.Exec(ctx, `UPDATE tasks SET is_completed = $1 WHERE id = $2;`, isCompleted, id)
	if err != nil {
		return errors.New("updating task completion error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrTaskNotFound
	}
	return nil
}

func (tr *TasksRepository) ResetCompletions(ctx context.Context, uid int64) error {
	_, err := tr.conn.Exec(ctx, `UPDATE tasks SET is_completed = FALSE WHERE user_id = $1;`, uid)
	if err != nil {
		return errors.New("resetting task completions error: " + err.Error())
	}
	return nil
}

func (tr *TasksRepository) Delete(ctx context.Context, id int64) error {
	ct, err := tr.conn.Exec(ctx, `DELETE FROM tasks WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting task: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrTaskNotFound
	}
	return nil
}
