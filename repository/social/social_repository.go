package social

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/souqhub/marketplace/model"
)

type SQL struct {
	conn *sqlx.DB
}

// SocialRepository covers the simple join/fact records: favorites, messages
// and reports. They share create/delete/list semantics with no further
// lifecycle, so one repository holds all three.
type SocialRepository interface {
	AddFavorite(ctx context.Context, userID, listingID uint64) error
	RemoveFavorite(ctx context.Context, userID, listingID uint64) error
	ListFavorites(ctx context.Context, userID uint64) ([]model.FavoriteEntity, error)

	InsertMessage(ctx context.Context, msg *model.MessageEntity) (uint64, error)
	ListConversation(ctx context.Context, userID, peerID uint64) ([]model.MessageEntity, error)
	MarkRead(ctx context.Context, recipientID, senderID uint64) error

	InsertReport(ctx context.Context, report *model.ReportEntity) (uint64, error)
}

func NewSocialRepository(conn *sqlx.DB) SocialRepository {
	return &SQL{conn: conn}
}

func (s *SQL) AddFavorite(ctx context.Context, userID, listingID uint64) error {
	_, err := s.conn.ExecContext(ctx,
		"INSERT IGNORE INTO favorite (user_id, listing_id, created_at) VALUES (?, ?, NOW())",
		userID, listingID)
	return err
}

func (s *SQL) RemoveFavorite(ctx context.Context, userID, listingID uint64) error {
	_, err := s.conn.ExecContext(ctx,
		"DELETE FROM favorite WHERE user_id = ? AND listing_id = ?", userID, listingID)
	return err
}

func (s *SQL) ListFavorites(ctx context.Context, userID uint64) ([]model.FavoriteEntity, error) {
	items := make([]model.FavoriteEntity, 0)
	err := s.conn.SelectContext(ctx, &items,
		"SELECT id, user_id, listing_id, created_at FROM favorite WHERE user_id = ? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQL) InsertMessage(ctx context.Context, msg *model.MessageEntity) (uint64, error) {
	res, err := s.conn.ExecContext(ctx,
		"INSERT INTO message (sender_id, recipient_id, listing_id, body, created_at) VALUES (?, ?, ?, ?, NOW())",
		msg.SenderID, msg.RecipientID, msg.ListingID, msg.Body)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *SQL) ListConversation(ctx context.Context, userID, peerID uint64) ([]model.MessageEntity, error) {
	items := make([]model.MessageEntity, 0)
	err := s.conn.SelectContext(ctx, &items,
		`SELECT id, sender_id, recipient_id, listing_id, body, read_at, created_at FROM message
WHERE (sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)
ORDER BY created_at ASC`,
		userID, peerID, peerID, userID)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQL) MarkRead(ctx context.Context, recipientID, senderID uint64) error {
	_, err := s.conn.ExecContext(ctx,
		"UPDATE message SET read_at = NOW() WHERE recipient_id = ? AND sender_id = ? AND read_at IS NULL",
		recipientID, senderID)
	return err
}

func (s *SQL) InsertReport(ctx context.Context, report *model.ReportEntity) (uint64, error) {
	res, err := s.conn.ExecContext(ctx,
		"INSERT INTO report (user_id, listing_id, reason, created_at) VALUES (?, ?, ?, NOW())",
		report.UserID, report.ListingID, report.Reason)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}
