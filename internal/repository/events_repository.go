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

type EventsRepository struct {
	conn PgConnection
}

func NewEventsRepo(cfg DBConfig) *EventsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for eventsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for eventsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &EventsRepository{
		conn: pool,
	}
}

func NewEventsRepoWithConn(conn PgConnection) *EventsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for eventsRepo: " + err.Error())
	}
	return &EventsRepository{
		conn: conn,
	}
}

func (er *EventsRepository) Create(ctx context.Context, event *entity.Event) (int64, error) {
	var id int64
	row := er.conn.QueryRow(ctx, `INSERT INTO events (user_id, title, start_time, end_time, category, description) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;`,
		event.UserID,
		event.Title,
		event.StartTime,
		event.EndTime,
		event.Category,
		event.Description,
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
		return 0, errors.New("creating event db error: " + err.Error())
	}
	return id, nil
}

func (er *EventsRepository) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	var event entity.Event
	event.ID = id
	row := er.conn.QueryRow(ctx, `SELECT user_id, title, start_time, end_time, category, description FROM events WHERE id = $1;`, id)
	if err := row.Scan(&event.UserID, &event.Title, &event.StartTime, &event.EndTime, &event.Category, &event.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrEventNotFound
		}
		return nil, errors.New("getting event by id error: " + err.Error())
	}
	return &event, nil
}

func (er *EventsRepository) GetByUserID(ctx context.Context, uid int64) ([]*entity.Event, error) {
	events := make([]*entity.Event, 0)
	rows, err := er.conn.Query(ctx, `SELECT id, user_id, title, start_time, end_time, category, description
		FROM events WHERE user_id = $1 ORDER BY start_time;`, uid)
	if err != nil {
		return nil, errors.New("getting events by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		e := entity.Event{}
		err = rows.Scan(&e.ID, &e.UserID, &e.Title, &e.StartTime, &e.EndTime, &e.Category, &e.Description)
		if err != nil {
			return nil, errors.New("unmarhalling event error: " + err.Error())
		}
		events = append(events, &e)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return events, nil
}

func (er *EventsRepository) Delete(ctx context.Context, id int64) error {
	ct, err := er.conn.Exec(ctx, `DELETE FROM events WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting event: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrEventNotFound
	}
	return nil
}
