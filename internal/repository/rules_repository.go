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

type RulesRepository struct {
	conn PgConnection
}

func NewRulesRepo(cfg DBConfig) *RulesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for rulesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for rulesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &RulesRepository{
		conn: pool,
	}
}

func NewRulesRepoWithConn(conn PgConnection) *RulesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for rulesRepo: " + err.Error())
	}
	return &RulesRepository{
		conn: conn,
	}
}

func (rr *RulesRepository) Create(ctx context.Context, rule *entity.Rule) (int64, error) {
	var id int64
	row := rr.conn.QueryRow(ctx, `INSERT INTO rules (user_id, description, type, is_default) VALUES ($1, $2, $3, $4) RETURNING id;`,
		rule.UserID,
		rule.Description,
		rule.Type,
		rule.IsDefault,
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
		return 0, errors.New("creating rule db error: " + err.Error())
	}
	return id, nil
}

func (rr *RulesRepository) GetByID(ctx context.Context, id int64) (*entity.Rule, error) {
	var rule entity.Rule
	rule.ID = id
	row := rr.conn.QueryRow(ctx, `SELECT user_id, description, type, is_default FROM rules WHERE id = $1;`, id)
	if err := row.Scan(&rule.UserID, &rule.Description, &rule.Type, &rule.IsDefault); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrRuleNotFound
		}
		return nil, errors.New("getting rule by id error: " + err.Error())
	}
	return &rule, nil
}

func (rr *RulesRepository) GetByUserID(ctx context.Context, uid int64) ([]*entity.Rule, error) {
	rules := make([]*entity.Rule, 0)
	rows, err := rr.conn.Query(ctx, `SELECT id, user_id, description, type, is_default
		FROM rules WHERE user_id = $1 ORDER BY id;`, uid)
	if err != nil {
		return nil, errors.New("getting rules by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		r := entity.Rule{}
		err = rows.Scan(&r.ID, &r.UserID, &r.Description, &r.Type, &r.IsDefault)
		if err != nil {
			return nil, errors.New("unmarhalling rule error: " + err.Error())
		}
		rules = append(rules, &r)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return rules, nil
}

func (rr *RulesRepository) Delete(ctx context.Context, id int64) error {
	ct, err := rr.conn.Exec(ctx, `DELETE FROM rules WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting rule: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrRuleNotFound
	}
	return nil
}
