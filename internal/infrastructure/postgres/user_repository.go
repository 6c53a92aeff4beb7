package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sigescola/sigescola-api/internal/domain"
	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementação de UserRepository (usável com pool ou tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userSelect = `
	SELECT id, name, email, password_hash, role,
	       COALESCE(school_id, ''), COALESCE(gee, ''),
	       active, COALESCE(avatar_url, ''), created_at, updated_at
	FROM users`

// Create persiste o usuário. E-mail duplicado vira domain.ErrEmailAlreadyExists.
func (r *UserRepo) Create(user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	query := `
		INSERT INTO users (id, name, email, password_hash, role, school_id, gee, active, avatar_url, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role,
		nullIfEmpty(user.SchoolID), nullIfEmpty(user.GEE),
		user.Active, nullIfEmpty(user.AvatarURL), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return r.replaceAssignedSchools(user.ID, user.AssignedSchools)
}

// GetByID obtém um usuário por id, com as escolas atribuídas.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getOne(userSelect+` WHERE id = $1`, id)
}

// GetByEmail obtém um usuário pelo e-mail (login e claim de perfil).
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.getOne(userSelect+` WHERE lower(email) = lower($1)`, email)
}

func (r *UserRepo) getOne(query string, arg any) (*entity.User, error) {
	row := r.q.QueryRow(context.Background(), query, arg)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if err := r.loadAssignedSchools(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update regrava o usuário e as escolas atribuídas.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, role = $5,
		    school_id = $6, gee = $7, active = $8, avatar_url = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role,
		nullIfEmpty(user.SchoolID), nullIfEmpty(user.GEE),
		user.Active, nullIfEmpty(user.AvatarURL), time.Now().UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return r.replaceAssignedSchools(user.ID, user.AssignedSchools)
}

// List devolve os usuários paginados, sem as escolas atribuídas (listagem leve).
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	rows, err := r.q.Query(context.Background(),
		userSelect+` ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, user)
	}
	return list, rows.Err()
}

// Delete remove o usuário; as atribuições caem por ON DELETE CASCADE.
func (r *UserRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// replaceAssignedSchools regrava as escolas do Técnico GEE (replace-set).
func (r *UserRepo) replaceAssignedSchools(userID string, schoolIDs []string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM user_schools WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete user schools: %w", err)
	}
	for _, schoolID := range schoolIDs {
		if _, err := r.q.Exec(ctx,
			`INSERT INTO user_schools (user_id, school_id) VALUES ($1, $2)`, userID, schoolID); err != nil {
			return fmt.Errorf("insert user school: %w", err)
		}
	}
	return nil
}

func (r *UserRepo) loadAssignedSchools(user *entity.User) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT school_id FROM user_schools WHERE user_id = $1 ORDER BY school_id`, user.ID)
	if err != nil {
		return fmt.Errorf("list user schools: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var schoolID string
		if err := rows.Scan(&schoolID); err != nil {
			return fmt.Errorf("scan user school: %w", err)
		}
		user.AssignedSchools = append(user.AssignedSchools, schoolID)
	}
	return rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.SchoolID, &u.GEE,
		&u.Active, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
