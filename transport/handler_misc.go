package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/souqhub/marketplace/constant"
	"github.com/souqhub/marketplace/model"
	"github.com/souqhub/marketplace/utils/category"
	utilsContext "github.com/souqhub/marketplace/utils/context"
	"github.com/souqhub/marketplace/utils/errors"
	validatorx "github.com/souqhub/marketplace/utils/validator"
)

func (s *RestHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, category.All())
}

func (s *RestHandler) ListGovernorates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	res, err := s.GeoApp.ListGovernorates(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) ListDistricts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	governorateID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.GeoApp.ListDistricts(ctx, governorateID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) GetExchangeRate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	res, err := s.CurrencyApp.GetExchangeRate(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Convert godoc
// @Summary Convert an amount between SYP and USD
// @Tags currency
// @Produce json
// @Param amount query number true "Amount to convert"
// @Param from query string true "Source currency" Enums(SYP, USD)
// @Param to query string true "Target currency" Enums(SYP, USD)
// @Success 200 {object} response
// @Router /convert [get]
func (s *RestHandler) Convert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil || amount < 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	from := constant.Currency(r.URL.Query().Get("from"))
	to := constant.Currency(r.URL.Query().Get("to"))
	if !validCurrency(from) || !validCurrency(to) {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	rate, err := s.CurrencyApp.GetExchangeRate(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, &model.ConvertResponse{
		Amount:    amount,
		From:      string(from),
		To:        string(to),
		Converted: s.CurrencyApp.Convert(amount, from, to, rate.Rate),
		Rate:      rate.Rate,
	})
}

func validCurrency(c constant.Currency) bool {
	return c == constant.CurrencySYP || c == constant.CurrencyUSD
}

func (s *RestHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.SocialApp.ListFavorites(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	req.UserID = userID

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.SocialApp.AddFavorite(ctx, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

func (s *RestHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	listingID, err := strconv.ParseUint(mux.Vars(r)["listing_id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.SocialApp.RemoveFavorite(ctx, userID, listingID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

func (s *RestHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	req.SenderID = userID

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	msgID, err := s.SocialApp.SendMessage(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, map[string]uint64{"message_id": msgID})
}

func (s *RestHandler) ListConversation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	peerID, err := strconv.ParseUint(mux.Vars(r)["peer_id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.SocialApp.ListConversation(ctx, userID, peerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	req.UserID = userID

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.SocialApp.CreateReport(ctx, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

func (s *RestHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ChatApp.Complete(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
