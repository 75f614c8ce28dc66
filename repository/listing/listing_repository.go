package listing

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/souqhub/marketplace/constant"
	"github.com/souqhub/marketplace/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ListingRepository interface {
	Search(ctx context.Context, filter *model.ListingFilter) ([]model.ListingEntity, int64, error)
	GetByID(ctx context.Context, id uint64) (*model.ListingEntity, error)
	InsertTx(ctx context.Context, tx *sqlx.Tx, entity *model.ListingEntity) (uint64, error)
	InsertImagesTx(ctx context.Context, tx *sqlx.Tx, listingID uint64, urls []string) error
	Update(ctx context.Context, req *model.UpdateListingRequest) error
	UpdateStatus(ctx context.Context, id uint64, status constant.ListingStatus) error
	IncrementViews(ctx context.Context, id uint64) error
	Delete(ctx context.Context, id uint64) error
	GetImages(ctx context.Context, listingID uint64) ([]string, error)
}

func NewListingRepository(conn *sqlx.DB) ListingRepository {
	return &SQL{conn: conn}
}

const (
	searchBase = `SELECT l.id, l.user_id, l.title, l.title_en, l.description, l.description_en,
l.price, l.currency, l.category, l.condition, l.governorate_id, l.district_id,
l.status, l.is_featured, l.views, l.created_at, l.updated_at,
g.name_ar AS governorate_ar, g.name_en AS governorate_en,
d.name_ar AS district_ar, d.name_en AS district_en
FROM listing l
JOIN governorate g ON l.governorate_id = g.id
LEFT JOIN district d ON l.district_id = d.id
WHERE l.status = ?`

	countBase = `SELECT COUNT(*) FROM listing l WHERE l.status = ?`

	insertListingQuery = `INSERT INTO listing
(user_id, title, title_en, description, description_en, price, currency, category, ` + "`condition`" + `, governorate_id, district_id, status, is_featured, views, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, NOW())`

	insertImageQuery = `INSERT INTO listing_image (listing_id, url, sort_order) VALUES (?, ?, ?)`

	getImagesQuery = `SELECT url FROM listing_image WHERE listing_id = ? ORDER BY sort_order`
)

// buildSearchQuery turns the structured filter into the WHERE/ORDER BY tail
// shared by the page and count queries. The price bounds apply only when
// positive: a minimum of 0 means "no constraint", which the mobile clients
// rely on when the range slider sits at its origin.
func buildSearchQuery(filter *model.ListingFilter) (string, []any) {
	where := ""
	args := []any{string(constant.ListingStatusActive)}

	if filter.Category != "" && filter.Category != constant.CategoryAll {
		where += " AND l.category = ?"
		args = append(args, filter.Category)
	}
	if filter.GovernorateID != 0 {
		where += " AND l.governorate_id = ?"
		args = append(args, filter.GovernorateID)
	}
	if filter.DistrictID != 0 {
		where += " AND l.district_id = ?"
		args = append(args, filter.DistrictID)
	}
	if filter.PriceMin > 0 {
		where += " AND l.price >= ?"
		args = append(args, filter.PriceMin)
	}
	if filter.PriceMax > 0 {
		where += " AND l.price <= ?"
		args = append(args, filter.PriceMax)
	}
	if filter.FeaturedOnly {
		where += " AND l.is_featured = ?"
		args = append(args, true)
	}

	return where, args
}

func orderClause(sortBy constant.SortKey) string {
	switch sortBy {
	case constant.SortOldest:
		return " ORDER BY l.created_at ASC"
	case constant.SortPriceAsc:
		return " ORDER BY l.price ASC"
	case constant.SortPriceDesc:
		return " ORDER BY l.price DESC"
	case constant.SortMostViewed:
		return " ORDER BY l.views DESC"
	default:
		return " ORDER BY l.created_at DESC"
	}
}

func (s *SQL) Search(ctx context.Context, filter *model.ListingFilter) ([]model.ListingEntity, int64, error) {
	where, args := buildSearchQuery(filter)

	offset := (filter.Page - 1) * filter.PerPage
	query := searchBase + where + orderClause(filter.SortBy) + " LIMIT ? OFFSET ?"
	pageArgs := append(append([]any{}, args...), filter.PerPage, offset)

	rows, err := s.conn.QueryxContext(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]model.ListingEntity, 0)
	for rows.Next() {
		var it model.ListingEntity
		if err := rows.StructScan(&it); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.conn.GetContext(ctx, &total, countBase+where, args...); err != nil {
		return nil, 0, err
	}

	// attach images per row; one page is small enough that N queries are fine
	for i := range items {
		urls, err := s.GetImages(ctx, items[i].ID)
		if err != nil {
			return nil, 0, err
		}
		items[i].Images = urls
	}

	return items, total, nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.ListingEntity, error) {
	query := `SELECT l.id, l.user_id, l.title, l.title_en, l.description, l.description_en,
l.price, l.currency, l.category, l.condition, l.governorate_id, l.district_id,
l.status, l.is_featured, l.views, l.created_at, l.updated_at,
g.name_ar AS governorate_ar, g.name_en AS governorate_en,
d.name_ar AS district_ar, d.name_en AS district_en
FROM listing l
JOIN governorate g ON l.governorate_id = g.id
LEFT JOIN district d ON l.district_id = d.id
WHERE l.id = ?`

	var entity model.ListingEntity
	if err := s.conn.QueryRowxContext(ctx, query, id).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	urls, err := s.GetImages(ctx, entity.ID)
	if err != nil {
		return nil, err
	}
	entity.Images = urls
	return &entity, nil
}

func (s *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, entity *model.ListingEntity) (uint64, error) {
	res, err := tx.ExecContext(ctx, insertListingQuery,
		entity.UserID, entity.Title, entity.TitleEN, entity.Description, entity.DescriptionEN,
		entity.Price, entity.Currency, entity.Category, entity.Condition,
		entity.GovernorateID, entity.DistrictID, entity.Status, entity.IsFeatured)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *SQL) InsertImagesTx(ctx context.Context, tx *sqlx.Tx, listingID uint64, urls []string) error {
	for i, url := range urls {
		if _, err := tx.ExecContext(ctx, insertImageQuery, listingID, url, i); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQL) Update(ctx context.Context, req *model.UpdateListingRequest) error {
	query := "UPDATE listing SET updated_at = NOW()"
	args := make([]any, 0, 10)

	if req.Title != "" {
		query += ", title = ?"
		args = append(args, req.Title)
	}
	if req.TitleEN != "" {
		query += ", title_en = ?"
		args = append(args, req.TitleEN)
	}
	if req.Description != "" {
		query += ", description = ?"
		args = append(args, req.Description)
	}
	if req.DescriptionEN != "" {
		query += ", description_en = ?"
		args = append(args, req.DescriptionEN)
	}
	if req.Price > 0 {
		query += ", price = ?"
		args = append(args, req.Price)
	}
	if req.Currency != "" {
		query += ", currency = ?"
		args = append(args, req.Currency)
	}
	if req.Condition != "" {
		query += ", `condition` = ?"
		args = append(args, req.Condition)
	}
	if req.GovernorateID != 0 {
		query += ", governorate_id = ?"
		args = append(args, req.GovernorateID)
	}
	if req.DistrictID != nil {
		query += ", district_id = ?"
		args = append(args, *req.DistrictID)
	}

	query += " WHERE id = ?"
	args = append(args, req.ListingID)

	_, err := s.conn.ExecContext(ctx, query, args...)
	return err
}

func (s *SQL) UpdateStatus(ctx context.Context, id uint64, status constant.ListingStatus) error {
	_, err := s.conn.ExecContext(ctx, "UPDATE listing SET status = ?, updated_at = NOW() WHERE id = ?", status, id)
	return err
}

func (s *SQL) IncrementViews(ctx context.Context, id uint64) error {
	_, err := s.conn.ExecContext(ctx, "UPDATE listing SET views = views + 1 WHERE id = ?", id)
	return err
}

func (s *SQL) Delete(ctx context.Context, id uint64) error {
	if _, err := s.conn.ExecContext(ctx, "DELETE FROM listing_image WHERE listing_id = ?", id); err != nil {
		return err
	}
	_, err := s.conn.ExecContext(ctx, "DELETE FROM listing WHERE id = ?", id)
	return err
}

func (s *SQL) GetImages(ctx context.Context, listingID uint64) ([]string, error) {
	urls := make([]string, 0)
	if err := s.conn.SelectContext(ctx, &urls, getImagesQuery, listingID); err != nil {
		return nil, err
	}
	return urls, nil
}
