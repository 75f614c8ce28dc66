package otp_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appotp "github.com/souqhub/marketplace/application/otp"
	"github.com/souqhub/marketplace/cmd/config"
	"github.com/souqhub/marketplace/constant"
	otpmocks "github.com/souqhub/marketplace/mocks/repository/otp"
	redismocks "github.com/souqhub/marketplace/mocks/repository/redis"
	usermocks "github.com/souqhub/marketplace/mocks/repository/user"
	smsmocks "github.com/souqhub/marketplace/mocks/thirdparty/sms"
	"github.com/souqhub/marketplace/model"
	cerr "github.com/souqhub/marketplace/utils/errors"
	"github.com/stretchr/testify/mock"
)

func otpTestConfig() *config.Config {
	return &config.Config{
		OTP: config.OTPConfig{
			Expiry:         5 * time.Minute,
			ResendInterval: 60 * time.Second,
		},
	}
}

func TestOTPApp_SendCode(t *testing.T) {
	type fields struct {
		config    *config.Config
		otpRepo   *otpmocks.OTPRepository
		userRepo  *usermocks.UserRepository
		redisRepo *redismocks.Repository
		smsClient *smsmocks.Client
	}
	type args struct {
		ctx   context.Context
		phone string
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: code stored and sent",
			fields: fields{
				config:    otpTestConfig(),
				otpRepo:   otpmocks.NewOTPRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
				smsClient: smsmocks.NewClient(t),
			},
			args: args{
				ctx:   context.Background(),
				phone: "+963991234567",
			},
			mockCall: func(f fields) {
				f.redisRepo.
					On("OTPThrottled", mock.Anything, "+963991234567").
					Return(false, nil).
					Once()

				f.otpRepo.
					On("Upsert", mock.Anything, mock.MatchedBy(func(ent *model.OTPEntity) bool {
						return ent.Phone == "+963991234567" &&
							len(ent.Code) == 6 &&
							ent.ExpiresAt.After(time.Now())
					})).
					Return(nil).
					Once()

				f.smsClient.
					On("Send", mock.Anything, "+963991234567", mock.AnythingOfType("string")).
					Return(nil).
					Once()

				f.redisRepo.
					On("SetOTPThrottle", mock.Anything, "+963991234567", 60*time.Second).
					Return(nil).
					Once()
			},
			wantErr: false,
		},
		{
			name: "error: resend throttled",
			fields: fields{
				config:    otpTestConfig(),
				otpRepo:   otpmocks.NewOTPRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
				smsClient: smsmocks.NewClient(t),
			},
			args: args{
				ctx:   context.Background(),
				phone: "+963991234567",
			},
			mockCall: func(f fields) {
				f.redisRepo.
					On("OTPThrottled", mock.Anything, "+963991234567").
					Return(true, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrOTPThrottled,
		},
		{
			name: "error: sms gateway failure keeps stored code",
			fields: fields{
				config:    otpTestConfig(),
				otpRepo:   otpmocks.NewOTPRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
				smsClient: smsmocks.NewClient(t),
			},
			args: args{
				ctx:   context.Background(),
				phone: "+963991234567",
			},
			mockCall: func(f fields) {
				f.redisRepo.
					On("OTPThrottled", mock.Anything, "+963991234567").
					Return(false, nil).
					Once()

				// the upsert still happens; only the send step fails
				f.otpRepo.
					On("Upsert", mock.Anything, mock.AnythingOfType("*model.OTPEntity")).
					Return(nil).
					Once()

				f.smsClient.
					On("Send", mock.Anything, "+963991234567", mock.AnythingOfType("string")).
					Return(errors.New("gateway timeout")).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrOTPSendFailed,
		},
		{
			name: "error: upsert fails",
			fields: fields{
				config:    otpTestConfig(),
				otpRepo:   otpmocks.NewOTPRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
				smsClient: smsmocks.NewClient(t),
			},
			args: args{
				ctx:   context.Background(),
				phone: "+963991234567",
			},
			mockCall: func(f fields) {
				f.redisRepo.
					On("OTPThrottled", mock.Anything, "+963991234567").
					Return(false, nil).
					Once()

				f.otpRepo.
					On("Upsert", mock.Anything, mock.AnythingOfType("*model.OTPEntity")).
					Return(errors.New("db error")).
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
			app := appotp.NewOTPApp(tt.fields.config, tt.fields.otpRepo, tt.fields.userRepo, tt.fields.redisRepo, tt.fields.smsClient)

			err := app.SendCode(tt.args.ctx, tt.args.phone)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SendCode() error = %v, wantErr %v", err, tt.wantErr)
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

func TestOTPApp_VerifyCode(t *testing.T) {
	type fields struct {
		config    *config.Config
		otpRepo   *otpmocks.OTPRepository
		userRepo  *usermocks.UserRepository
		redisRepo *redismocks.Repository
		smsClient *smsmocks.Client
	}
	type args struct {
		ctx   context.Context
		phone string
		code  string
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		wantUser uint64
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: existing confirmed user",
			fields: fields{
				config:    otpTestConfig(),
				otpRepo:   otpmocks.NewOTPRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
				smsClient: smsmocks.NewClient(t),
			},
			args: args{
				ctx:   context.Background(),
				phone: "+963991234567",
				code:  "123456",
			},
			mockCall: func(f fields) {
				f.otpRepo.
					On("Get", mock.Anything, "+963991234567").
					Return(&model.OTPEntity{
						Phone:     "+963991234567",
						Code:      "123456",
						ExpiresAt: time.Now().Add(2 * time.Minute),
					}, nil).
					Once()

				// single use: the code is deleted on success
				f.otpRepo.
					On("Delete", mock.Anything, "+963991234567").
					Return(nil).
					Once()

				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: "+963991234567"}).
					Return(&model.UserEntity{
						ID:             7,
						Phone:          "+963991234567",
						PhoneConfirmed: true,
					}, nil).
					Once()
			},
			wantUser: 7,
			wantErr:  false,
		},
		{
			name: "success: unconfirmed user gets confirmed",
			fields: fields{
				config:    otpTestConfig(),
				otpRepo:   otpmocks.NewOTPRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
				smsClient: smsmocks.NewClient(t),
			},
			args: args{
				ctx:   context.Background(),
				phone: "+963991234567",
				code:  "123456",
			},
			mockCall: func(f fields) {
				f.otpRepo.
					On("Get", mock.Anything, "+963991234567").
					Return(&model.OTPEntity{
						Phone:     "+963991234567",
						Code:      "123456",
						ExpiresAt: time.Now().Add(2 * time.Minute),
					}, nil).
					Once()

				f.otpRepo.
					On("Delete", mock.Anything, "+963991234567").
					Return(nil).
					Once()

				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: "+963991234567"}).
					Return(&model.UserEntity{
						ID:             7,
						Phone:          "+963991234567",
						PhoneConfirmed: false,
					}, nil).
					Once()

				f.userRepo.
					On("ConfirmPhone", mock.Anything, uint64(7)).
					Return(nil).
					Once()
			},
			wantUser: 7,
			wantErr:  false,
		},
		{
			name: "success: unknown phone creates confirmed account",
			fields: fields{
				config:    otpTestConfig(),
				otpRepo:   otpmocks.NewOTPRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
				smsClient: smsmocks.NewClient(t),
			},
			args: args{
				ctx:   context.Background(),
				phone: "+963995550000",
				code:  "654321",
			},
			mockCall: func(f fields) {
				f.otpRepo.
					On("Get", mock.Anything, "+963995550000").
					Return(&model.OTPEntity{
						Phone:     "+963995550000",
						Code:      "654321",
						ExpiresAt: time.Now().Add(2 * time.Minute),
					}, nil).
					Once()

				f.otpRepo.
					On("Delete", mock.Anything, "+963995550000").
					Return(nil).
					Once()

				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: "+963995550000"}).
					Return(nil, nil).
					Once()

				f.userRepo.
					On("Create", mock.Anything, mock.MatchedBy(func(ent *model.UserEntity) bool {
						return ent.Phone == "+963995550000" &&
							ent.PhoneConfirmed &&
							ent.PasswordHash != ""
					})).
					Return(&model.UserEntity{
						ID:             9,
						Phone:          "+963995550000",
						PhoneConfirmed: true,
					}, nil).
					Once()
			},
			wantUser: 9,
			wantErr:  false,
		},
		{
			name: "error: no code stored",
			fields: fields{
				config:    otpTestConfig(),
				otpRepo:   otpmocks.NewOTPRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
				smsClient: smsmocks.NewClient(t),
			},
			args: args{
				ctx:   context.Background(),
				phone: "+963991234567",
				code:  "123456",
			},
			mockCall: func(f fields) {
				f.otpRepo.
					On("Get", mock.Anything, "+963991234567").
					Return(nil, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrOTPInvalid,
		},
		{
			name: "error: wrong code",
			fields: fields{
				config:    otpTestConfig(),
				otpRepo:   otpmocks.NewOTPRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
				smsClient: smsmocks.NewClient(t),
			},
			args: args{
				ctx:   context.Background(),
				phone: "+963991234567",
				code:  "000000",
			},
			mockCall: func(f fields) {
				f.otpRepo.
					On("Get", mock.Anything, "+963991234567").
					Return(&model.OTPEntity{
						Phone:     "+963991234567",
						Code:      "123456",
						ExpiresAt: time.Now().Add(2 * time.Minute),
					}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrOTPInvalid,
		},
		{
			name: "error: expired code is reported as expired, not invalid",
			fields: fields{
				config:    otpTestConfig(),
				otpRepo:   otpmocks.NewOTPRepository(t),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
				smsClient: smsmocks.NewClient(t),
			},
			args: args{
				ctx:   context.Background(),
				phone: "+963991234567",
				code:  "123456",
			},
			mockCall: func(f fields) {
				f.otpRepo.
					On("Get", mock.Anything, "+963991234567").
					Return(&model.OTPEntity{
						Phone:     "+963991234567",
						Code:      "123456",
						ExpiresAt: time.Now().Add(-1 * time.Minute),
					}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrOTPExpired,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				ttFields := tt.fields
				tt.mockCall(ttFields)
			}
			app := appotp.NewOTPApp(tt.fields.config, tt.fields.otpRepo, tt.fields.userRepo, tt.fields.redisRepo, tt.fields.smsClient)

			got, err := app.VerifyCode(tt.args.ctx, tt.args.phone, tt.args.code)
			if (err != nil) != tt.wantErr {
				t.Fatalf("VerifyCode() error = %v, wantErr %v", err, tt.wantErr)
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

			if got == nil || got.ID != tt.wantUser {
				t.Fatalf("VerifyCode() user = %+v, want ID %d", got, tt.wantUser)
			}
			if !got.PhoneConfirmed {
				t.Fatal("VerifyCode() should leave the user phone-confirmed")
			}
		})
	}
}
