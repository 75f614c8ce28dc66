package model

import (
	"time"

	"github.com/souqhub/marketplace/constant"
)

// ListingEntity represents the listing table entity with the joined
// governorate/district names used by list and detail responses.
type ListingEntity struct {
	ID            uint64                 `db:"id" json:"id"`
	UserID        uint64                 `db:"user_id" json:"user_id"`
	Title         string                 `db:"title" json:"title"`
	TitleEN       string                 `db:"title_en" json:"title_en,omitempty"`
	Description   string                 `db:"description" json:"description"`
	DescriptionEN string                 `db:"description_en" json:"description_en,omitempty"`
	Price         float64                `db:"price" json:"price"`
	Currency      constant.Currency      `db:"currency" json:"currency"`
	Category      string                 `db:"category" json:"category"`
	Condition     constant.Condition     `db:"condition" json:"condition,omitempty"`
	GovernorateID uint64                 `db:"governorate_id" json:"governorate_id"`
	DistrictID    *uint64                `db:"district_id" json:"district_id,omitempty"`
	Status        constant.ListingStatus `db:"status" json:"status"`
	IsFeatured    bool                   `db:"is_featured" json:"is_featured"`
	Views         uint64                 `db:"views" json:"views"`
	CreatedAt     time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt     *time.Time             `db:"updated_at" json:"updated_at,omitempty"`

	GovernorateAR string  `db:"governorate_ar" json:"governorate_ar"`
	GovernorateEN string  `db:"governorate_en" json:"governorate_en"`
	DistrictAR    *string `db:"district_ar" json:"district_ar,omitempty"`
	DistrictEN    *string `db:"district_en" json:"district_en,omitempty"`

	Images []string `db:"-" json:"images"`

	// display strings rendered per language, never stored
	PriceDisplay   string `db:"-" json:"price_display"`
	PriceDisplayEN string `db:"-" json:"price_display_en"`
}

// ListingFilter is the structured filter the query builder translates into
// SQL constraints. Query and Condition are applied client-side over the
// fetched page, not pushed to the database.
type ListingFilter struct {
	Category      string
	GovernorateID uint64
	DistrictID    uint64
	PriceMin      float64
	PriceMax      float64
	FeaturedOnly  bool
	SortBy        constant.SortKey
	Query         string
	Condition     constant.Condition
	Page          int
	PerPage       int
}

type ListingListResponse struct {
	Items      []ListingEntity `json:"items"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
}

// ListingImage is one stored image row, ordered by SortOrder.
type ListingImage struct {
	ID        uint64 `db:"id"`
	ListingID uint64 `db:"listing_id"`
	URL       string `db:"url"`
	SortOrder int    `db:"sort_order"`
}

type CreateListingRequest struct {
	UserID        uint64
	Title         string             `json:"title" validate:"required"`
	TitleEN       string             `json:"title_en"`
	Description   string             `json:"description" validate:"required"`
	DescriptionEN string             `json:"description_en"`
	Price         float64            `json:"price" validate:"required,gt=0"`
	Currency      constant.Currency  `json:"currency" validate:"required,oneof=SYP USD"`
	Category      string             `json:"category" validate:"required"`
	Condition     constant.Condition `json:"condition" validate:"omitempty,oneof=new used"`
	GovernorateID uint64             `json:"governorate_id" validate:"required"`
	DistrictID    *uint64            `json:"district_id"`
	Images        []ImageUpload      `json:"images" validate:"max=10"`
}

// ImageUpload carries one base64-encoded image payload from the create form.
type ImageUpload struct {
	FileName string `json:"file_name" validate:"required"`
	Data     string `json:"data" validate:"required"`
}

type UpdateListingRequest struct {
	UserID        uint64
	ListingID     uint64
	Title         string             `json:"title"`
	TitleEN       string             `json:"title_en"`
	Description   string             `json:"description"`
	DescriptionEN string             `json:"description_en"`
	Price         float64            `json:"price" validate:"omitempty,gt=0"`
	Currency      constant.Currency  `json:"currency" validate:"omitempty,oneof=SYP USD"`
	Condition     constant.Condition `json:"condition" validate:"omitempty,oneof=new used"`
	GovernorateID uint64             `json:"governorate_id"`
	DistrictID    *uint64            `json:"district_id"`
}

type UpdateListingStatusRequest struct {
	Status constant.ListingStatus `json:"status" validate:"required,oneof=active pending sold"`
}

type CreateListingResponse struct {
	ListingID uint64   `json:"listing_id"`
	Images    []string `json:"images"`
}
