package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/finsetu/backend/internal/group/entity"
)

// NewGroup creates the group and all of its membership rows in one
// transaction. The creator row carries the admin flag.
func (s *DB) NewGroup(ctx context.Context, g entity.NewGroup) (err error) {
	ctx, span := s.startSpan(ctx, "NewGroup")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer s.rollback(ctx, tx)

	if _, err = tx.Exec(ctx,
		`INSERT INTO groups (id, name, description, created_by)
		 VALUES ($1, $2, $3, $4)`,
		g.ID, g.Name, g.Description, g.CreatedBy); err != nil {
		return s.mapError(err)
	}

	if _, err = tx.Exec(ctx,
		`INSERT INTO group_members (group_id, user_id, is_admin)
		 VALUES ($1, $2, true)`,
		g.ID, g.CreatedBy); err != nil {
		return s.mapError(err)
	}

	for _, memberID := range g.MemberIDs {
		if _, err = tx.Exec(ctx,
			`INSERT INTO group_members (group_id, user_id, is_admin)
			 VALUES ($1, $2, false)`,
			g.ID, memberID); err != nil {
			return s.mapError(err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

// GetGroupsByMember returns the groups userID belongs to, each with its full
// member list (joined with the user directory for display fields).
func (s *DB) GetGroupsByMember(ctx context.Context, userID int64) (groups []entity.GroupDetail, err error) {
	ctx, span := s.startSpan(ctx, "GetGroupsByMember")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx,
		`SELECT g.id, g.name, g.description, g.created_by, g.created_at,
		        m.user_id, u.username, u.phone_number, m.is_admin
		 FROM groups g
		 JOIN group_members m ON m.group_id = g.id
		 JOIN auth_users u ON u.id = m.user_id
		 WHERE g.id IN (SELECT group_id FROM group_members WHERE user_id = $1)
		 ORDER BY g.created_at, m.user_id`, userID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	groups = make([]entity.GroupDetail, 0)
	index := make(map[int64]int)

	for rows.Next() {
		var g entity.Group
		var m entity.Member
		if err = rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedBy, &g.CreatedAt,
			&m.UserID, &m.Username, &m.PhoneNumber, &m.IsAdmin); err != nil {
			return nil, s.mapError(err)
		}
		m.GroupID = g.ID

		i, ok := index[g.ID]
		if !ok {
			i = len(groups)
			index[g.ID] = i
			groups = append(groups, entity.GroupDetail{Group: g})
		}
		groups[i].Members = append(groups[i].Members, m)
	}

	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return groups, nil
}

func (s *DB) GetMember(ctx context.Context, groupID, userID int64) (member *entity.Member, err error) {
	ctx, span := s.startSpan(ctx, "GetMember")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx,
		`SELECT m.group_id, m.user_id, u.username, u.phone_number, m.is_admin
		 FROM group_members m
		 JOIN auth_users u ON u.id = m.user_id
		 WHERE m.group_id = $1 AND m.user_id = $2`, groupID, userID)

	var m entity.Member
	if err = s.mapError(row.Scan(&m.GroupID, &m.UserID, &m.Username, &m.PhoneNumber,
		&m.IsAdmin)); err != nil {
		return nil, err
	}

	return &m, nil
}

// DeleteGroup removes the group; member rows cascade.
func (s *DB) DeleteGroup(ctx context.Context, groupID int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteGroup")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM groups WHERE id = $1`, groupID)
	if err != nil {
		return s.mapError(err)
	}

	if tag.RowsAffected() == 0 {
		return s.mapError(pgx.ErrNoRows)
	}

	return nil
}
