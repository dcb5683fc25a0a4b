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

type UsersRepository struct {
	conn PgConnection
}

func NewUsersRepo(cfg DBConfig) *UsersRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for usersRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for usersRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &UsersRepository{
		conn: pool,
	}
}

func NewUsersRepoWithConn(conn PgConnection) *UsersRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for usersRepo: " + err.Error())
	}
	return &UsersRepository{
		conn: conn,
	}
}

func (ur *UsersRepository) Create(ctx context.Context, user *entity.User) (int64, error) {
	if user == nil {
		return 0, errors.New("user is nil")
	}
	var id int64
	row := ur.conn.QueryRow(ctx, `INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id;`,
		user.Username, user.PasswordHash)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return 0, errorvalues.ErrUserExists
			}
		}
		return 0, errors.New("creating user db error: " + err.Error())
	}
	return id, nil
}

func (ur *UsersRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var user entity.User
	user.ID = id
	row := ur.conn.QueryRow(ctx, `SELECT username, password_hash, level, experience, points, streak FROM users WHERE id = $1;`, id)
	if err := row.Scan(&user.Username, &user.PasswordHash, &user.Level, &user.Experience, &user.Points, &user.Streak); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching user by id error: " + err.Error())
	}
	return &user, nil
}

func (ur *UsersRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	user.Username = username
	row := ur.conn.QueryRow(ctx, `SELECT id, password_hash, level, experience, points, streak FROM users WHERE username = $1;`, username)
	if err := row.Scan(&user.ID, &user.PasswordHash, &user.Level, &user.Experience, &user.Points, &user.Streak); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching user by username error: " + err.Error())
	}
	return &user, nil
}

func (ur *UsersRepository) AddPoints(ctx context.Context, id int64, delta int) error {
	ct, err := ur.conn.Exec(ctx, `UPDATE users SET points = points + $1 WHERE id = $2;`, delta, id)
	if err != nil {
		return errors.New("updating user points error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func (ur *UsersRepository) AddExperience(ctx context.Context, id int64, delta int) (*entity.User, error) {
	user, err := ur.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Level, user.Experience = applyUserExperience(user.Level, user.Experience, delta)
	ct, err := ur.conn.Exec(ctx, `UPDATE users SET level = $1, experience = $2 WHERE id = $3;`,
		user.Level, user.Experience, id)
	if err != nil {
		return nil, errors.New("updating user experience error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return nil, errorvalues.ErrUserNotFound
	}
	return user, nil
}

// applyUserExperience adds delta to experience with the level-up rule:
// one level per call at the level*100 threshold, experience never below 0.
func applyUserExperience(level, experience, delta int) (int, int) {
	experience += delta
	if required := level * 100; experience >= required {
		level++
		experience -= required
	}
	if experience < 0 {
		experience = 0
	}
	return level, experience
}

func (ur *UsersRepository) SetStreak(ctx context.Context, id int64, streak int) error {
	ct, err := ur.conn.Exec(ctx, `UPDATE users SET streak = $1 WHERE id = $2;`, streak, id)
	if err != nil {
		return errors.New("updating user streak error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func (ur *UsersRepository) ResetProgress(ctx context.Context, id int64) (*entity.User, error) {
	ct, err := ur.conn.Exec(ctx, `UPDATE users SET level = 1, experience = 0, points = 0, streak = 0 WHERE id = $1;`, id)
	if err != nil {
		return nil, errors.New("resetting user progress error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return nil, errorvalues.ErrUserNotFound
	}
	return ur.FindByID(ctx, id)
}
