package pg

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"civictrack.org/internal/auth"
	"civictrack.org/internal/ids"
)

const userColumns = `id, name, email, password_hash, role, ward, created_at`

func (s *Store) FindUserByEmail(ctx context.Context, email string) (auth.User, error) {
	row := s.db.QueryRowContext(ctx, `
		select `+userColumns+`
		from users
		where lower(email) = lower($1)
	`, strings.TrimSpace(email))
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.User{}, auth.ErrNotFound
	}
	if err != nil {
		return auth.User{}, err
	}
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, u auth.User) (auth.User, error) {
	if u.ID == "" {
		u.ID = ids.New()
	}
	var ward sql.NullInt64
	if u.Ward != nil {
		ward = sql.NullInt64{Int64: int64(*u.Ward), Valid: true}
	}
	row := s.db.QueryRowContext(ctx, `
		insert into users (id, name, email, password_hash, role, ward)
		values ($1, $2, lower($3), $4, $5, $6)
		returning `+userColumns,
		u.ID, u.Name, strings.TrimSpace(u.Email), u.PasswordHash, string(u.Role), ward)
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return auth.User{}, auth.ErrAlreadyExists
		}
		return auth.User{}, err
	}
	return created, nil
}

func (s *Store) ListUsersByRole(ctx context.Context, role auth.RoleName) ([]auth.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		select `+userColumns+`
		from users
		where role = $1
		order by created_at desc, id desc
	`, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []auth.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (auth.User, error) {
	var (
		u    auth.User
		role string
		ward sql.NullInt64
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &ward, &u.CreatedAt); err != nil {
		return auth.User{}, err
	}
	u.Role = auth.RoleName(role)
	if ward.Valid {
		w := int(ward.Int64)
		u.Ward = &w
	}
	return u, nil
}
