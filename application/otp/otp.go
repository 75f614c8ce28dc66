package otp

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
	"time"

	"github.com/souqhub/marketplace/cmd/config"
	"github.com/souqhub/marketplace/constant"
	"github.com/souqhub/marketplace/model"
	otprepo "github.com/souqhub/marketplace/repository/otp"
	redisrepo "github.com/souqhub/marketplace/repository/redis"
	userrepo "github.com/souqhub/marketplace/repository/user"
	"github.com/souqhub/marketplace/thirdparty/sms"
	"github.com/souqhub/marketplace/utils/errors"
	"github.com/souqhub/marketplace/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type OTPApp interface {
	SendCode(ctx context.Context, phone string) error
	VerifyCode(ctx context.Context, phone, code string) (*model.UserEntity, error)
}

type OTPAppImpl struct {
	config    *config.Config
	otpRepo   otprepo.OTPRepository
	userRepo  userrepo.UserRepository
	redisRepo redisrepo.Repository
	smsClient sms.Client
}

func NewOTPApp(config *config.Config, otpRepo otprepo.OTPRepository, userRepo userrepo.UserRepository, redisRepo redisrepo.Repository, smsClient sms.Client) OTPApp {
	return &OTPAppImpl{
		config:    config,
		otpRepo:   otpRepo,
		userRepo:  userRepo,
		redisRepo: redisRepo,
		smsClient: smsClient,
	}
}

// SendCode stores a fresh 6-digit code for the phone and dispatches it by
// SMS. The upsert replaces any live code for the same phone, so the previous
// one stops working the moment a resend happens.
func (s *OTPAppImpl) SendCode(ctx context.Context, phone string) error {
	throttled, err := s.redisRepo.OTPThrottled(ctx, phone)
	if err != nil {
		logger.Error("[SendCode] err redisRepo.OTPThrottled", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if throttled {
		return errors.SetCustomError(constant.ErrOTPThrottled)
	}

	code, err := generateCode()
	if err != nil {
		logger.Error("[SendCode] err generateCode", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	entity := &model.OTPEntity{
		Phone:     phone,
		Code:      code,
		ExpiresAt: time.Now().Add(s.config.OTP.Expiry),
	}
	if err := s.otpRepo.Upsert(ctx, entity); err != nil {
		logger.Error("[SendCode] err otpRepo.Upsert", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	body := fmt.Sprintf("رمز التحقق الخاص بك هو %s", code)
	if err := s.smsClient.Send(ctx, phone, body); err != nil {
		// the stored code stays; the user can retry sending
		logger.Error("[SendCode] err smsClient.Send", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrOTPSendFailed)
	}

	if err := s.redisRepo.SetOTPThrottle(ctx, phone, s.config.OTP.ResendInterval); err != nil {
		logger.Warn("[SendCode] err SetOTPThrottle", zap.String("error", err.Error()))
	}

	return nil
}

// VerifyCode checks the stored code for the phone, distinguishing invalid
// from expired. On success the code is deleted (single-use), a user row is
// ensured for the phone and its phone_confirmed flag is set.
func (s *OTPAppImpl) VerifyCode(ctx context.Context, phone, code string) (*model.UserEntity, error) {
	entity, err := s.otpRepo.Get(ctx, phone)
	if err != nil {
		logger.Error("[VerifyCode] err otpRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil || entity.Code != code {
		return nil, errors.SetCustomError(constant.ErrOTPInvalid)
	}
	if time.Now().After(entity.ExpiresAt) {
		return nil, errors.SetCustomError(constant.ErrOTPExpired)
	}

	if err := s.otpRepo.Delete(ctx, phone); err != nil {
		logger.Error("[VerifyCode] err otpRepo.Delete", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{Phone: phone})
	if err != nil {
		logger.Error("[VerifyCode] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if user == nil {
		// OTP-only signup path: create the account with a random password
		hash, err := randomPasswordHash()
		if err != nil {
			logger.Error("[VerifyCode] err randomPasswordHash", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		user, err = s.userRepo.Create(ctx, &model.UserEntity{
			Phone:          phone,
			PasswordHash:   hash,
			PhoneConfirmed: true,
		})
		if err != nil {
			logger.Error("[VerifyCode] err userRepo.Create", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		return user, nil
	}

	if !user.PhoneConfirmed {
		if err := s.userRepo.ConfirmPhone(ctx, user.ID); err != nil {
			logger.Error("[VerifyCode] err userRepo.ConfirmPhone", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		user.PhoneConfirmed = true
	}

	return user, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func randomPasswordHash() (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(base64.StdEncoding.EncodeToString(raw)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
