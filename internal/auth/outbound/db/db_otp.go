package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/finsetu/backend/internal/auth/entity"
)

// NewRegistration creates the user row and its first OTP record in one
// transaction, so a registered user always has exactly one live code.
func (s *DB) NewRegistration(ctx context.Context, user entity.NewUser, rec entity.OtpRecord, hash string) (err error) {
	ctx, span := s.startSpan(ctx, "NewRegistration")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer s.rollback(ctx, tx)

	if _, err = tx.Exec(ctx,
		`INSERT INTO auth_users (id, username, phone_number, password, verified)
		 VALUES ($1, $2, $3, $4, false)`,
		user.ID, user.Username, user.PhoneNumber, hash); err != nil {
		return s.mapError(err)
	}

	if err = insertOtp(ctx, tx, rec); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

// ReplaceOtp swaps any outstanding OTP record for the user with rec.
//
// The user row is locked first so a replace racing a verify serializes; the
// delete-then-insert keeps at most one live record per user.
func (s *DB) ReplaceOtp(ctx context.Context, rec entity.OtpRecord) (err error) {
	ctx, span := s.startSpan(ctx, "ReplaceOtp")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer s.rollback(ctx, tx)

	if err = lockUser(ctx, tx, rec.UserID); err != nil {
		return s.mapError(err)
	}

	if _, err = tx.Exec(ctx,
		`DELETE FROM auth_otps WHERE user_id = $1`, rec.UserID); err != nil {
		return s.mapError(err)
	}

	if err = insertOtp(ctx, tx, rec); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

// ConsumeOtp atomically checks and spends the newest live OTP for the user.
//
// It returns (false, nil) when no record matches the submitted code with
// expires_at in the future; wrong, expired and already-consumed codes are
// indistinguishable to the caller. On a match the record is deleted and the
// user marked verified in the same transaction.
func (s *DB) ConsumeOtp(ctx context.Context, userID int64, code string, now time.Time) (ok bool, err error) {
	ctx, span := s.startSpan(ctx, "ConsumeOtp")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer s.rollback(ctx, tx)

	if err = lockUser(ctx, tx, userID); err != nil {
		return false, s.mapError(err)
	}

	var otpID int64
	err = tx.QueryRow(ctx,
		`SELECT id FROM auth_otps
		 WHERE user_id = $1 AND code = $2 AND expires_at > $3
		 ORDER BY created_at DESC
		 LIMIT 1`,
		userID, code, now).Scan(&otpID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, s.mapError(err)
	}

	if _, err = tx.Exec(ctx,
		`DELETE FROM auth_otps WHERE id = $1`, otpID); err != nil {
		return false, s.mapError(err)
	}

	if _, err = tx.Exec(ctx,
		`UPDATE auth_users SET verified = true, updated_at = NOW() WHERE id = $1`,
		userID); err != nil {
		return false, s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return false, s.mapError(err)
	}

	return true, nil
}

func lockUser(ctx context.Context, tx pgx.Tx, userID int64) error {
	var id int64
	return tx.QueryRow(ctx,
		`SELECT id FROM auth_users WHERE id = $1 FOR UPDATE`, userID).Scan(&id)
}

func insertOtp(ctx context.Context, tx pgx.Tx, rec entity.OtpRecord) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO auth_otps (id, user_id, phone_number, code, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.UserID, rec.PhoneNumber, rec.Code, rec.CreatedAt, rec.ExpiresAt)
	return err
}
