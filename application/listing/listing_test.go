package listing_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	applisting "github.com/souqhub/marketplace/application/listing"
	"github.com/souqhub/marketplace/constant"
	listingmocks "github.com/souqhub/marketplace/mocks/repository/listing"
	storagemocks "github.com/souqhub/marketplace/mocks/repository/storage"
	txmocks "github.com/souqhub/marketplace/mocks/repository/tx"
	"github.com/souqhub/marketplace/model"
	cerr "github.com/souqhub/marketplace/utils/errors"
	"github.com/stretchr/testify/mock"
)

func TestListingApp_Search(t *testing.T) {
	type fields struct {
		txRepo      *txmocks.TxRepository
		listingRepo *listingmocks.ListingRepository
		storageRepo *storagemocks.StorageRepository
	}
	type args struct {
		ctx    context.Context
		filter *model.ListingFilter
	}
	tests := []struct {
		name      string
		fields    fields
		args      args
		mockCall  func(f fields)
		wantItems int
		wantTotal int64
		wantErr   bool
		errCode   constant.ErrorType
	}{
		{
			name: "success: ui category token is mapped before hitting the database",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				storageRepo: storagemocks.NewStorageRepository(t),
			},
			args: args{
				ctx: context.Background(),
				filter: &model.ListingFilter{
					Category: "cars",
					PriceMin: 1_000_000,
					PriceMax: 5_000_000,
					SortBy:   constant.SortPriceAsc,
				},
			},
			mockCall: func(f fields) {
				f.listingRepo.
					On("Search", mock.Anything, mock.MatchedBy(func(flt *model.ListingFilter) bool {
						return flt.Category == "vehicles" &&
							flt.PriceMin == 1_000_000 &&
							flt.PriceMax == 5_000_000 &&
							flt.Page == 1 &&
							flt.PerPage == 20
					})).
					Return([]model.ListingEntity{
						{ID: 1, Title: "كيا ريو", Price: 2_000_000},
						{ID: 2, Title: "هيونداي", Price: 4_500_000},
					}, int64(2), nil).
					Once()
			},
			wantItems: 2,
			wantTotal: 2,
			wantErr:   false,
		},
		{
			name: "success: zero minimum means no lower bound",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				storageRepo: storagemocks.NewStorageRepository(t),
			},
			args: args{
				ctx: context.Background(),
				filter: &model.ListingFilter{
					PriceMin: 0,
					PriceMax: 100,
				},
			},
			mockCall: func(f fields) {
				f.listingRepo.
					On("Search", mock.Anything, mock.AnythingOfType("*model.ListingFilter")).
					Return([]model.ListingEntity{{ID: 3, Price: 50}}, int64(1), nil).
					Once()
			},
			wantItems: 1,
			wantTotal: 1,
			wantErr:   false,
		},
		{
			name: "success: free-text query filters the fetched page only",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				storageRepo: storagemocks.NewStorageRepository(t),
			},
			args: args{
				ctx: context.Background(),
				filter: &model.ListingFilter{
					Query: "ايفون",
				},
			},
			mockCall: func(f fields) {
				f.listingRepo.
					On("Search", mock.Anything, mock.AnythingOfType("*model.ListingFilter")).
					Return([]model.ListingEntity{
						{ID: 1, Title: "ايفون 13 برو", Description: "بحالة ممتازة"},
						{ID: 2, Title: "سامسونج S22", Description: "جديد بالكرتونة"},
					}, int64(2), nil).
					Once()
			},
			// the non-matching row is dropped but the total still reflects the db count
			wantItems: 1,
			wantTotal: 2,
			wantErr:   false,
		},
		{
			name: "success: condition filter applies after the fetch",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				storageRepo: storagemocks.NewStorageRepository(t),
			},
			args: args{
				ctx: context.Background(),
				filter: &model.ListingFilter{
					Condition: constant.ConditionNew,
				},
			},
			mockCall: func(f fields) {
				f.listingRepo.
					On("Search", mock.Anything, mock.AnythingOfType("*model.ListingFilter")).
					Return([]model.ListingEntity{
						{ID: 1, Condition: constant.ConditionNew},
						{ID: 2, Condition: constant.ConditionUsed},
						{ID: 3, Condition: constant.ConditionNew},
					}, int64(3), nil).
					Once()
			},
			wantItems: 2,
			wantTotal: 3,
			wantErr:   false,
		},
		{
			name: "error: inverted price range",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				storageRepo: storagemocks.NewStorageRepository(t),
			},
			args: args{
				ctx: context.Background(),
				filter: &model.ListingFilter{
					PriceMin: 500,
					PriceMax: 100,
				},
			},
			mockCall: nil,
			wantErr:  true,
			errCode:  constant.ErrPriceRange,
		},
		{
			name: "error: repository failure",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				storageRepo: storagemocks.NewStorageRepository(t),
			},
			args: args{
				ctx:    context.Background(),
				filter: &model.ListingFilter{},
			},
			mockCall: func(f fields) {
				f.listingRepo.
					On("Search", mock.Anything, mock.AnythingOfType("*model.ListingFilter")).
					Return(nil, int64(0), errors.New("db error")).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				ttFields := tt.fields
				tt.mockCall(ttFields)
			}
			app := applisting.NewListingApp(tt.fields.txRepo, tt.fields.listingRepo, tt.fields.storageRepo)

			got, err := app.Search(tt.args.ctx, tt.args.filter)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Search() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if len(got.Items) != tt.wantItems {
				t.Fatalf("Search() items = %d, want %d", len(got.Items), tt.wantItems)
			}
			if got.TotalCount != tt.wantTotal {
				t.Fatalf("Search() total = %d, want %d", got.TotalCount, tt.wantTotal)
			}
		})
	}
}

func TestListingApp_Get(t *testing.T) {
	type fields struct {
		txRepo      *txmocks.TxRepository
		listingRepo *listingmocks.ListingRepository
		storageRepo *storagemocks.StorageRepository
	}
	tests := []struct {
		name      string
		fields    fields
		id        uint64
		mockCall  func(f fields)
		wantViews uint64
		wantErr   bool
		errCode   constant.ErrorType
	}{
		{
			name: "success: fetch bumps the view counter",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				storageRepo: storagemocks.NewStorageRepository(t),
			},
			id: 5,
			mockCall: func(f fields) {
				f.listingRepo.
					On("GetByID", mock.Anything, uint64(5)).
					Return(&model.ListingEntity{ID: 5, Views: 10}, nil).
					Once()

				f.listingRepo.
					On("IncrementViews", mock.Anything, uint64(5)).
					Return(nil).
					Once()
			},
			wantViews: 11,
			wantErr:   false,
		},
		{
			name: "success: failed increment never fails the fetch",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				storageRepo: storagemocks.NewStorageRepository(t),
			},
			id: 5,
			mockCall: func(f fields) {
				f.listingRepo.
					On("GetByID", mock.Anything, uint64(5)).
					Return(&model.ListingEntity{ID: 5, Views: 10}, nil).
					Once()

				f.listingRepo.
					On("IncrementViews", mock.Anything, uint64(5)).
					Return(errors.New("db error")).
					Once()
			},
			wantViews: 10,
			wantErr:   false,
		},
		{
			name: "error: listing not found",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				storageRepo: storagemocks.NewStorageRepository(t),
			},
			id: 404,
			mockCall: func(f fields) {
				f.listingRepo.
					On("GetByID", mock.Anything, uint64(404)).
					Return(nil, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				ttFields := tt.fields
				tt.mockCall(ttFields)
			}
			app := applisting.NewListingApp(tt.fields.txRepo, tt.fields.listingRepo, tt.fields.storageRepo)

			got, err := app.Get(context.Background(), tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Get() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if got.Views != tt.wantViews {
				t.Fatalf("Get() views = %d, want %d", got.Views, tt.wantViews)
			}
		})
	}
}

func TestListingApp_Create(t *testing.T) {
	imageData := base64.StdEncoding.EncodeToString([]byte("fake-image-bytes"))

	type fields struct {
		txRepo      *txmocks.TxRepository
		listingRepo *listingmocks.ListingRepository
		storageRepo *storagemocks.StorageRepository
	}
	tests := []struct {
		name     string
		fields   fields
		req      *model.CreateListingRequest
		mockCall func(f fields)
		wantID   uint64
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: listing with uploaded image",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				storageRepo: storagemocks.NewStorageRepository(t),
			},
			req: &model.CreateListingRequest{
				UserID:        1,
				Title:         "ايفون 13",
				Description:   "بحالة ممتازة",
				Price:         500,
				Currency:      constant.CurrencyUSD,
				Category:      "phones",
				GovernorateID: 1,
				Images: []model.ImageUpload{
					{FileName: "front.jpg", Data: imageData},
				},
			},
			mockCall: func(f fields) {
				f.storageRepo.
					On("Upload", mock.Anything, "front.jpg", []byte("fake-image-bytes")).
					Return("https://cdn.example.com/listings/1.jpg", nil).
					Once()

				f.txRepo.
					On("BeginTx", mock.Anything).
					Return(nil, nil).
					Once()

				// the ui token "phones" lands in storage as the electronics enum
				f.listingRepo.
					On("InsertTx", mock.Anything, mock.Anything, mock.MatchedBy(func(ent *model.ListingEntity) bool {
						return ent.Category == "electronics" &&
							ent.Status == constant.ListingStatusActive &&
							ent.UserID == 1
					})).
					Return(uint64(10), nil).
					Once()

				f.listingRepo.
					On("InsertImagesTx", mock.Anything, mock.Anything, uint64(10), []string{"https://cdn.example.com/listings/1.jpg"}).
					Return(nil).
					Once()

				f.txRepo.
					On("CommitTx", mock.Anything).
					Return(nil).
					Once()
			},
			wantID:  10,
			wantErr: false,
		},
		{
			name: "success: failed upload is skipped, listing still created",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				storageRepo: storagemocks.NewStorageRepository(t),
			},
			req: &model.CreateListingRequest{
				UserID:        1,
				Title:         "كنبة",
				Description:   "مستعملة",
				Price:         100_000,
				Currency:      constant.CurrencySYP,
				Category:      "furniture",
				GovernorateID: 2,
				Images: []model.ImageUpload{
					{FileName: "sofa.jpg", Data: imageData},
				},
			},
			mockCall: func(f fields) {
				f.storageRepo.
					On("Upload", mock.Anything, "sofa.jpg", []byte("fake-image-bytes")).
					Return("", errors.New("bucket unavailable")).
					Once()

				f.txRepo.
					On("BeginTx", mock.Anything).
					Return(nil, nil).
					Once()

				f.listingRepo.
					On("InsertTx", mock.Anything, mock.Anything, mock.AnythingOfType("*model.ListingEntity")).
					Return(uint64(11), nil).
					Once()

				f.listingRepo.
					On("InsertImagesTx", mock.Anything, mock.Anything, uint64(11), []string{}).
					Return(nil).
					Once()

				f.txRepo.
					On("CommitTx", mock.Anything).
					Return(nil).
					Once()
			},
			wantID:  11,
			wantErr: false,
		},
		{
			name: "error: unknown category is rejected before any upload",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				storageRepo: storagemocks.NewStorageRepository(t),
			},
			req: &model.CreateListingRequest{
				UserID:   1,
				Title:    "something",
				Category: "spaceships",
			},
			mockCall: nil,
			wantErr:  true,
			errCode:  constant.ErrUnknownCategory,
		},
		{
			name: "error: insert failure cleans up uploaded objects",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				storageRepo: storagemocks.NewStorageRepository(t),
			},
			req: &model.CreateListingRequest{
				UserID:        1,
				Title:         "ايفون 13",
				Description:   "بحالة ممتازة",
				Price:         500,
				Currency:      constant.CurrencyUSD,
				Category:      "phones",
				GovernorateID: 1,
				Images: []model.ImageUpload{
					{FileName: "front.jpg", Data: imageData},
				},
			},
			mockCall: func(f fields) {
				f.storageRepo.
					On("Upload", mock.Anything, "front.jpg", []byte("fake-image-bytes")).
					Return("https://cdn.example.com/listings/1.jpg", nil).
					Once()

				f.txRepo.
					On("BeginTx", mock.Anything).
					Return(nil, nil).
					Once()

				f.listingRepo.
					On("InsertTx", mock.Anything, mock.Anything, mock.AnythingOfType("*model.ListingEntity")).
					Return(uint64(0), errors.New("insert failed")).
					Once()

				f.txRepo.
					On("RollbackTx", mock.Anything).
					Return(nil).
					Once()

				f.storageRepo.
					On("DeleteByURL", mock.Anything, "https://cdn.example.com/listings/1.jpg").
					Return(nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				ttFields := tt.fields
				tt.mockCall(ttFields)
			}
			app := applisting.NewListingApp(tt.fields.txRepo, tt.fields.listingRepo, tt.fields.storageRepo)

			got, err := app.Create(context.Background(), tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if got.ListingID != tt.wantID {
				t.Fatalf("Create() listing id = %d, want %d", got.ListingID, tt.wantID)
			}
		})
	}
}

func TestListingApp_UpdateStatus(t *testing.T) {
	type fields struct {
		txRepo      *txmocks.TxRepository
		listingRepo *listingmocks.ListingRepository
		storageRepo *storagemocks.StorageRepository
	}
	tests := []struct {
		name     string
		fields   fields
		userID   uint64
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: owner marks listing as sold",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				storageRepo: storagemocks.NewStorageRepository(t),
			},
			userID: 1,
			mockCall: func(f fields) {
				f.listingRepo.
					On("GetByID", mock.Anything, uint64(5)).
					Return(&model.ListingEntity{ID: 5, UserID: 1}, nil).
					Once()

				f.listingRepo.
					On("UpdateStatus", mock.Anything, uint64(5), constant.ListingStatusSold).
					Return(nil).
					Once()
			},
			wantErr: false,
		},
		{
			name: "error: non-owner is forbidden",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				storageRepo: storagemocks.NewStorageRepository(t),
			},
			userID: 99,
			mockCall: func(f fields) {
				f.listingRepo.
					On("GetByID", mock.Anything, uint64(5)).
					Return(&model.ListingEntity{ID: 5, UserID: 1}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				ttFields := tt.fields
				tt.mockCall(ttFields)
			}
			app := applisting.NewListingApp(tt.fields.txRepo, tt.fields.listingRepo, tt.fields.storageRepo)

			err := app.UpdateStatus(context.Background(), tt.userID, 5, constant.ListingStatusSold)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UpdateStatus() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
			}
		})
	}
}
