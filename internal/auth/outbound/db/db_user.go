package db

import (
	"context"

	"github.com/finsetu/backend/internal/auth/entity"
)

const userColumns = `id, username, phone_number, verified, created_at, updated_at`

func (s *DB) GetUserByID(ctx context.Context, id int64) (user *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx,
		`SELECT `+userColumns+` FROM auth_users WHERE id = $1`, id)

	var u entity.User
	if err = s.mapError(row.Scan(&u.ID, &u.Username, &u.PhoneNumber, &u.Verified,
		&u.CreatedAt, &u.UpdatedAt)); err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *DB) GetUserByPhone(ctx context.Context, phone string) (user *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByPhone")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx,
		`SELECT `+userColumns+` FROM auth_users WHERE phone_number = $1`, phone)

	var u entity.User
	if err = s.mapError(row.Scan(&u.ID, &u.Username, &u.PhoneNumber, &u.Verified,
		&u.CreatedAt, &u.UpdatedAt)); err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *DB) GetUserByUsername(ctx context.Context, username string) (user *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByUsername")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx,
		`SELECT `+userColumns+` FROM auth_users WHERE username = $1`, username)

	var u entity.User
	if err = s.mapError(row.Scan(&u.ID, &u.Username, &u.PhoneNumber, &u.Verified,
		&u.CreatedAt, &u.UpdatedAt)); err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *DB) GetUserLoginInfo(ctx context.Context, phone string) (info *entity.UserLoginInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetUserLoginInfo")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx,
		`SELECT id, username, phone_number, verified, password
		 FROM auth_users WHERE phone_number = $1`, phone)

	var u entity.UserLoginInfo
	if err = s.mapError(row.Scan(&u.ID, &u.Username, &u.PhoneNumber, &u.Verified,
		&u.Password)); err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *DB) GetUserList(ctx context.Context) (users []entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserList")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx,
		`SELECT `+userColumns+` FROM auth_users ORDER BY created_at`)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	users = make([]entity.User, 0)
	for rows.Next() {
		var u entity.User
		if err = rows.Scan(&u.ID, &u.Username, &u.PhoneNumber, &u.Verified,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, s.mapError(err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return users, nil
}
