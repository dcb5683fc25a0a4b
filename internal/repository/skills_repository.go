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

type SkillsRepository struct {
	conn PgConnection
}

func NewSkillsRepo(cfg DBConfig) *SkillsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for skillsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for skillsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &SkillsRepository{
		conn: pool,
	}
}

func NewSkillsRepoWithConn(conn PgConnection) *SkillsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for skillsRepo: " + err.Error())
	}
	return &SkillsRepository{
		conn: conn,
	}
}

func (sr *SkillsRepository) Create(ctx context.Context, skill *entity.Skill) (int64, error) {
	var id int64
	row := sr.conn.QueryRow(ctx, `INSERT INTO skills (user_id, name, level, experience, max_experience) VALUES ($1, $2, $3, $4, $5) RETURNING id;`,
		skill.UserID,
		skill.Name,
		skill.Level,
		skill.Experience,
		skill.MaxExperience,
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
		return 0, errors.New("creating skill db error: " + err.Error())
	}
	return id, nil
}

func (sr *SkillsRepository) GetByID(ctx context.Context, id int64) (*entity.Skill, error) {
	var skill entity.Skill
	skill.ID = id
	row := sr.conn.QueryRow(ctx, `SELECT user_id, name, level, experience, max_experience FROM skills WHERE id = $1;`, id)
	if err := row.Scan(&skill.UserID, &skill.Name, &skill.Level, &skill.Experience, &skill.MaxExperience); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrSkillNotFound
		}
		return nil, errors.New("getting skill by id error: " + err.Error())
	}
	return &skill, nil
}

func (sr *SkillsRepository) GetByUserID(ctx context.Context, uid int64) ([]*entity.Skill, error) {
	skills := make([]*entity.Skill, 0)
	rows, err := sr.conn.Query(ctx, `SELECT id, user_id, name, level, experience, max_experience
		FROM skills WHERE user_id = $1 ORDER BY id;`, uid)
	if err != nil {
		return nil, errors.New("getting skills by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		s := entity.Skill{}
		err = rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Level, &s.Experience, &s.MaxExperience)
		if err != nil {
			return nil, errors.New("unmarhalling skill error: " + err.Error())
		}
		skills = append(skills, &s)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return skills, nil
}

func (sr *SkillsRepository) UpdateLevel(ctx context.Context, id int64, level, experience int) (*entity.Skill, error) {
	skill, err := sr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	skill.Level, skill.Experience, skill.MaxExperience = applySkillExperience(level, experience, skill.MaxExperience)
	ct, err := sr.conn.Exec(ctx, `UPDATE skills SET level = $1, experience = $2, max_experience = $3 WHERE id = $4;`,
		skill.Level, skill.Experience, skill.MaxExperience, id)
	if err != nil {
		return nil, errors.New("updating skill level error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return nil, errorvalues.ErrSkillNotFound
	}
	return skill, nil
}

// applySkillExperience replaces level and experience, then applies the
// level-up rule: one level per call, threshold consumed, next threshold
// is the old one scaled by 1.2 and floored.
func applySkillExperience(level, experience, maxExperience int) (int, int, int) {
	if experience >= maxExperience {
		level++
		experience -= maxExperience
		maxExperience = maxExperience * 12 / 10
	}
	return level, experience, maxExperience
}

func (sr *SkillsRepository) Delete(ctx context.Context, id int64) error {
	ct, err := sr.conn.Exec(ctx, `DELETE FROM skills WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting skill: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrSkillNotFound
	}
	return nil
}
