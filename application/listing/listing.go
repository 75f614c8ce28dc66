package listing

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/souqhub/marketplace/constant"
	"github.com/souqhub/marketplace/model"
	listingrepo "github.com/souqhub/marketplace/repository/listing"
	storagerepo "github.com/souqhub/marketplace/repository/storage"
	txrepo "github.com/souqhub/marketplace/repository/tx"
	"github.com/souqhub/marketplace/utils/category"
	"github.com/souqhub/marketplace/utils/errors"
	"github.com/souqhub/marketplace/utils/format"
	"github.com/souqhub/marketplace/utils/logger"
	"go.uber.org/zap"
)

type ListingApp interface {
	Search(ctx context.Context, filter *model.ListingFilter) (*model.ListingListResponse, error)
	Get(ctx context.Context, id uint64) (*model.ListingEntity, error)
	Create(ctx context.Context, req *model.CreateListingRequest) (*model.CreateListingResponse, error)
	Update(ctx context.Context, req *model.UpdateListingRequest) error
	UpdateStatus(ctx context.Context, userID, listingID uint64, status constant.ListingStatus) error
	Delete(ctx context.Context, userID, listingID uint64) error
}

type listingAppImpl struct {
	txRepo      txrepo.TxRepository
	listingRepo listingrepo.ListingRepository
	storageRepo storagerepo.StorageRepository
}

func NewListingApp(txRepo txrepo.TxRepository, listingRepo listingrepo.ListingRepository, storageRepo storagerepo.StorageRepository) ListingApp {
	return &listingAppImpl{
		txRepo:      txRepo,
		listingRepo: listingRepo,
		storageRepo: storageRepo,
	}
}

// Search runs the filter against the database and then applies the free-text
// and condition filters over the fetched page only. Text search therefore
// never sees rows outside the current page; that matches the behavior the
// clients were built against.
func (s *listingAppImpl) Search(ctx context.Context, filter *model.ListingFilter) (*model.ListingListResponse, error) {
	if filter.PriceMin > 0 && filter.PriceMax > 0 && filter.PriceMin > filter.PriceMax {
		return nil, errors.SetCustomError(constant.ErrPriceRange)
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 20
	}

	if filter.Category != "" && filter.Category != constant.CategoryAll {
		filter.Category = category.MustMap(filter.Category)
	}

	items, total, err := s.listingRepo.Search(ctx, filter)
	if err != nil {
		logger.Error("[Search] err listingRepo.Search", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	items = applyPageFilters(items, filter.Query, filter.Condition)
	for i := range items {
		decoratePrice(&items[i])
	}

	return &model.ListingListResponse{
		Items:      items,
		TotalCount: total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
	}, nil
}

// applyPageFilters keeps rows whose title or description contains the query
// (case-insensitive) and whose condition matches, over the fetched page.
func applyPageFilters(items []model.ListingEntity, query string, condition constant.Condition) []model.ListingEntity {
	if query == "" && condition == "" {
		return items
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.ListingEntity, 0, len(items))
	for _, it := range items {
		if q != "" && !matchesQuery(&it, q) {
			continue
		}
		if condition != "" && it.Condition != condition {
			continue
		}
		out = append(out, it)
	}
	return out
}

// decoratePrice fills the rendered price strings for both languages.
func decoratePrice(it *model.ListingEntity) {
	it.PriceDisplay = format.FormatLargeNumber(it.Price, constant.LanguageArabic, it.Currency)
	it.PriceDisplayEN = format.FormatLargeNumber(it.Price, constant.LanguageEnglish, it.Currency)
}

func matchesQuery(it *model.ListingEntity, q string) bool {
	return strings.Contains(strings.ToLower(it.Title), q) ||
		strings.Contains(strings.ToLower(it.TitleEN), q) ||
		strings.Contains(strings.ToLower(it.Description), q) ||
		strings.Contains(strings.ToLower(it.DescriptionEN), q)
}

// Get fetches a listing and bumps its view counter. A failed increment is
// logged but never fails the fetch.
func (s *listingAppImpl) Get(ctx context.Context, id uint64) (*model.ListingEntity, error) {
	entity, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[Get] err listingRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if err := s.listingRepo.IncrementViews(ctx, id); err != nil {
		logger.Warn("[Get] err listingRepo.IncrementViews", zap.Uint64("listing_id", id), zap.String("error", err.Error()))
	} else {
		entity.Views++
	}

	decoratePrice(entity)
	return entity, nil
}

// Create uploads the images first and then inserts the listing row plus its
// image rows in one transaction. If the insert fails, the uploaded objects
// are deleted so nothing orphaned stays in the bucket.
func (s *listingAppImpl) Create(ctx context.Context, req *model.CreateListingRequest) (*model.CreateListingResponse, error) {
	enum, known := category.Map(req.Category)
	if !known {
		return nil, errors.SetCustomError(constant.ErrUnknownCategory)
	}

	uploaded := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		data, err := base64.StdEncoding.DecodeString(img.Data)
		if err != nil {
			logger.Warn("[Create] skipping undecodable image", zap.String("file", img.FileName), zap.String("error", err.Error()))
			continue
		}
		url, err := s.storageRepo.Upload(ctx, img.FileName, data)
		if err != nil {
			// keep uploading the remaining images
			logger.Warn("[Create] image upload failed", zap.String("file", img.FileName), zap.String("error", err.Error()))
			continue
		}
		uploaded = append(uploaded, url)
	}

	listingID, err := s.insertListing(ctx, req, enum, uploaded)
	if err != nil {
		s.cleanupImages(ctx, uploaded)
		return nil, err
	}

	return &model.CreateListingResponse{
		ListingID: listingID,
		Images:    uploaded,
	}, nil
}

func (s *listingAppImpl) insertListing(ctx context.Context, req *model.CreateListingRequest, categoryEnum string, imageURLs []string) (uint64, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Create] begin tx", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	listingID, err := s.listingRepo.InsertTx(ctx, tx, &model.ListingEntity{
		UserID:        req.UserID,
		Title:         req.Title,
		TitleEN:       req.TitleEN,
		Description:   req.Description,
		DescriptionEN: req.DescriptionEN,
		Price:         req.Price,
		Currency:      req.Currency,
		Category:      categoryEnum,
		Condition:     req.Condition,
		GovernorateID: req.GovernorateID,
		DistrictID:    req.DistrictID,
		Status:        constant.ListingStatusActive,
	})
	if err != nil {
		logger.Error("[Create] insert listing", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.listingRepo.InsertImagesTx(ctx, tx, listingID, imageURLs); err != nil {
		logger.Error("[Create] insert images", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Create] commit tx", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return listingID, nil
}

func (s *listingAppImpl) cleanupImages(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := s.storageRepo.DeleteByURL(ctx, url); err != nil {
			logger.Warn("[Create] cleanup image failed", zap.String("url", url), zap.String("error", err.Error()))
		}
	}
}

func (s *listingAppImpl) Update(ctx context.Context, req *model.UpdateListingRequest) error {
	entity, err := s.ownedListing(ctx, req.UserID, req.ListingID)
	if err != nil {
		return err
	}

	if req.GovernorateID == 0 {
		req.GovernorateID = entity.GovernorateID
	}

	if err := s.listingRepo.Update(ctx, req); err != nil {
		logger.Error("[Update] err listingRepo.Update", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *listingAppImpl) UpdateStatus(ctx context.Context, userID, listingID uint64, status constant.ListingStatus) error {
	if _, err := s.ownedListing(ctx, userID, listingID); err != nil {
		return err
	}

	if err := s.listingRepo.UpdateStatus(ctx, listingID, status); err != nil {
		logger.Error("[UpdateStatus] err listingRepo.UpdateStatus", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

// Delete removes the listing row and then its stored images; object deletion
// failures are logged only, the listing is gone either way.
func (s *listingAppImpl) Delete(ctx context.Context, userID, listingID uint64) error {
	entity, err := s.ownedListing(ctx, userID, listingID)
	if err != nil {
		return err
	}

	if err := s.listingRepo.Delete(ctx, listingID); err != nil {
		logger.Error("[Delete] err listingRepo.Delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	for _, url := range entity.Images {
		if err := s.storageRepo.DeleteByURL(ctx, url); err != nil {
			logger.Warn("[Delete] image object delete failed", zap.String("url", url), zap.String("error", err.Error()))
		}
	}
	return nil
}

func (s *listingAppImpl) ownedListing(ctx context.Context, userID, listingID uint64) (*model.ListingEntity, error) {
	entity, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		logger.Error("[ownedListing] err listingRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if entity.UserID != userID {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}
	return entity, nil
}
