package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/souqhub/marketplace/constant"
	"github.com/souqhub/marketplace/model"
	utilsContext "github.com/souqhub/marketplace/utils/context"
	"github.com/souqhub/marketplace/utils/errors"
	validatorx "github.com/souqhub/marketplace/utils/validator"
)

// SearchListings handler
// @Summary Search active listings
// @Description Filter by category, location, price range and sort key
// @Tags Listings
// @Produce json
// @Param category query string false "UI category token or 'all'"
// @Param governorate_id query int false "Governorate id"
// @Param district_id query int false "District id"
// @Param price_min query number false "Minimum price (0 means no bound)"
// @Param price_max query number false "Maximum price (0 means no bound)"
// @Param featured query bool false "Featured only"
// @Param sort query string false "newest|oldest|price_asc|price_desc|most_viewed"
// @Param q query string false "Free text, matched within the fetched page"
// @Param condition query string false "new|used"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} model.ListingListResponse
// @Router /listings [get]
func (s *RestHandler) SearchListings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := parseListingFilter(r)
	res, err := s.ListingApp.Search(ctx, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func parseListingFilter(r *http.Request) *model.ListingFilter {
	q := r.URL.Query()

	filter := &model.ListingFilter{
		Category:  q.Get("category"),
		SortBy:    constant.SortKey(q.Get("sort")),
		Query:     q.Get("q"),
		Condition: constant.Condition(q.Get("condition")),
	}
	filter.GovernorateID, _ = strconv.ParseUint(q.Get("governorate_id"), 10, 64)
	filter.DistrictID, _ = strconv.ParseUint(q.Get("district_id"), 10, 64)
	filter.PriceMin, _ = strconv.ParseFloat(q.Get("price_min"), 64)
	filter.PriceMax, _ = strconv.ParseFloat(q.Get("price_max"), 64)
	filter.FeaturedOnly = q.Get("featured") == "true"
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.PerPage, _ = strconv.Atoi(q.Get("per_page"))

	return filter
}

func (s *RestHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ListingApp.Get(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateListing handler
// @Summary Create a listing
// @Tags Listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateListingRequest true "Create Listing Request"
// @Success 200 {object} model.CreateListingResponse
// @Failure 400 {object} errors.CustomError
// @Router /listings [post]
func (s *RestHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	req.UserID = userID

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ListingApp.Create(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	listingID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	req.UserID = userID
	req.ListingID = listingID

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.ListingApp.Update(ctx, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

func (s *RestHandler) UpdateListingStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	listingID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.UpdateListingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.ListingApp.UpdateStatus(ctx, userID, listingID, req.Status); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

func (s *RestHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	listingID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.ListingApp.Delete(ctx, userID, listingID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

func (s *RestHandler) FeaturedListings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := parseListingFilter(r)
	filter.FeaturedOnly = true

	res, err := s.ListingApp.Search(ctx, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
