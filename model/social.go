package model

import "time"

// FavoriteEntity is a user<->listing join record.
type FavoriteEntity struct {
	ID        uint64    `db:"id" json:"id"`
	UserID    uint64    `db:"user_id" json:"user_id"`
	ListingID uint64    `db:"listing_id" json:"listing_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// MessageEntity is one direct message between two users about a listing.
type MessageEntity struct {
	ID          uint64     `db:"id" json:"id"`
	SenderID    uint64     `db:"sender_id" json:"sender_id"`
	RecipientID uint64     `db:"recipient_id" json:"recipient_id"`
	ListingID   *uint64    `db:"listing_id" json:"listing_id,omitempty"`
	Body        string     `db:"body" json:"body"`
	ReadAt      *time.Time `db:"read_at" json:"read_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// ReportEntity records a user flagging a listing.
type ReportEntity struct {
	ID        uint64    `db:"id" json:"id"`
	UserID    uint64    `db:"user_id" json:"user_id"`
	ListingID uint64    `db:"listing_id" json:"listing_id"`
	Reason    string    `db:"reason" json:"reason"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type SendMessageRequest struct {
	SenderID    uint64
	RecipientID uint64  `json:"recipient_id" validate:"required"`
	ListingID   *uint64 `json:"listing_id"`
	Body        string  `json:"body" validate:"required,max=2000"`
}

type CreateReportRequest struct {
	UserID    uint64
	ListingID uint64 `json:"listing_id" validate:"required"`
	Reason    string `json:"reason" validate:"required,max=500"`
}

type AddFavoriteRequest struct {
	UserID    uint64
	ListingID uint64 `json:"listing_id" validate:"required"`
}
