package otp

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/souqhub/marketplace/model"
)

type SQL struct {
	conn *sqlx.DB
}

type OTPRepository interface {
	Upsert(ctx context.Context, entity *model.OTPEntity) error
	Get(ctx context.Context, phone string) (*model.OTPEntity, error)
	Delete(ctx context.Context, phone string) error
}

func NewOTPRepository(conn *sqlx.DB) OTPRepository {
	return &SQL{conn: conn}
}

const (
	// phone is the primary key, so resending replaces the live code.
	upsertOTPQuery = `INSERT INTO otp (phone, code, expires_at, created_at) VALUES (?, ?, ?, NOW())
ON DUPLICATE KEY UPDATE code = VALUES(code), expires_at = VALUES(expires_at), created_at = NOW()`

	getOTPQuery = `SELECT phone, code, expires_at, created_at FROM otp WHERE phone = ?`
)

func (s *SQL) Upsert(ctx context.Context, entity *model.OTPEntity) error {
	_, err := s.conn.ExecContext(ctx, upsertOTPQuery, entity.Phone, entity.Code, entity.ExpiresAt)
	return err
}

func (s *SQL) Get(ctx context.Context, phone string) (*model.OTPEntity, error) {
	var entity model.OTPEntity
	if err := s.conn.QueryRowxContext(ctx, getOTPQuery, phone).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) Delete(ctx context.Context, phone string) error {
	_, err := s.conn.ExecContext(ctx, "DELETE FROM otp WHERE phone = ?", phone)
	return err
}
