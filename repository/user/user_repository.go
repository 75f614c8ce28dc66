package user

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/souqhub/marketplace/model"
)

type SQL struct {
	conn *sqlx.DB
}

type UserRepository interface {
	Create(ctx context.Context, req *model.UserEntity) (*model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
	ConfirmPhone(ctx context.Context, userID uint64) error
	UpdatePassword(ctx context.Context, userID uint64, passwordHash string) error
	GetProfile(ctx context.Context, userID uint64) (*model.ProfileEntity, error)
	UpsertProfile(ctx context.Context, profile *model.ProfileEntity) error
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const (
	insertUserQuery = `INSERT INTO user (name, phone, password_hash, phone_confirmed, created_at) VALUES (?, ?, ?, ?, NOW())`
	getUserBase     = `SELECT id, name, phone, password_hash, phone_confirmed, created_at, updated_at FROM user WHERE true`

	getProfileQuery = `SELECT user_id, name, phone, governorate_id, profile_picture, created_at, updated_at FROM profile WHERE user_id = ?`

	upsertProfileQuery = `INSERT INTO profile (user_id, name, phone, governorate_id, profile_picture, created_at)
VALUES (?, ?, ?, ?, ?, NOW())
ON DUPLICATE KEY UPDATE name = VALUES(name), governorate_id = VALUES(governorate_id), profile_picture = VALUES(profile_picture), updated_at = NOW()`
)

func (s *SQL) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	result, err := s.conn.ExecContext(ctx, insertUserQuery, data.Name, data.Phone, data.PasswordHash, data.PhoneConfirmed)
	if err != nil {
		return nil, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	data.ID = uint64(lastID)
	return data, nil
}

func (s *SQL) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := getUserBase
	args := make([]any, 0, 2)

	if filter.ID != 0 {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Phone != "" {
		query += " AND phone = ?"
		args = append(args, filter.Phone)
	}

	var entity model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, query, args...).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) ConfirmPhone(ctx context.Context, userID uint64) error {
	_, err := s.conn.ExecContext(ctx, "UPDATE user SET phone_confirmed = true, updated_at = NOW() WHERE id = ?", userID)
	return err
}

func (s *SQL) UpdatePassword(ctx context.Context, userID uint64, passwordHash string) error {
	_, err := s.conn.ExecContext(ctx, "UPDATE user SET password_hash = ?, updated_at = NOW() WHERE id = ?", passwordHash, userID)
	return err
}

func (s *SQL) GetProfile(ctx context.Context, userID uint64) (*model.ProfileEntity, error) {
	var profile model.ProfileEntity
	if err := s.conn.QueryRowxContext(ctx, getProfileQuery, userID).StructScan(&profile); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (s *SQL) UpsertProfile(ctx context.Context, profile *model.ProfileEntity) error {
	_, err := s.conn.ExecContext(ctx, upsertProfileQuery,
		profile.UserID, profile.Name, profile.Phone, profile.GovernorateID, profile.ProfilePicture)
	return err
}
