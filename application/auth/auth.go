package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	otpapp "github.com/souqhub/marketplace/application/otp"
	"github.com/souqhub/marketplace/cmd/config"
	"github.com/souqhub/marketplace/constant"
	"github.com/souqhub/marketplace/model"
	redisrepo "github.com/souqhub/marketplace/repository/redis"
	userrepo "github.com/souqhub/marketplace/repository/user"
	"github.com/souqhub/marketplace/utils/errors"
	"github.com/souqhub/marketplace/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthApp drives the two-phase phone auth flow: password sign-in or sign-up
// first, then OTP confirmation for any account whose phone is not yet
// confirmed. OTP verification exchanges directly for a session token, so the
// client never resubmits the password after the OTP round-trip.
type AuthApp interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	VerifyOTP(ctx context.Context, req *model.VerifyOTPRequest) (*model.AuthResponse, error)
	ResendOTP(ctx context.Context, phone string) error
	ValidateToken(ctx context.Context, tokenString string) (uint64, error)
	Logout(ctx context.Context, tokenString string) error
	UpdatePassword(ctx context.Context, req *model.UpdatePasswordRequest) error
	GetProfile(ctx context.Context, userID uint64) (*model.ProfileEntity, error)
	UpdateProfile(ctx context.Context, req *model.UpdateProfileRequest) error
}

type AuthAppImpl struct {
	config    *config.Config
	userRepo  userrepo.UserRepository
	redisRepo redisrepo.Repository
	otpApp    otpapp.OTPApp
}

func NewAuthApp(config *config.Config, userRepo userrepo.UserRepository, redisRepo redisrepo.Repository, otpApp otpapp.OTPApp) AuthApp {
	return &AuthAppImpl{
		config:    config,
		userRepo:  userRepo,
		redisRepo: redisRepo,
		otpApp:    otpApp,
	}
}

func (s *AuthAppImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	existingUser, err := s.userRepo.Get(ctx, &model.UserFilter{Phone: req.Phone})
	if err != nil {
		logger.Error("[Register] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, errors.SetCustomError(constant.ErrCredentialExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("[Register] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	userEntity := &model.UserEntity{
		Name:           req.Name,
		Phone:          req.Phone,
		PasswordHash:   string(hashedPassword),
		PhoneConfirmed: false,
	}
	userEntity, err = s.userRepo.Create(ctx, userEntity)
	if err != nil {
		logger.Error("[Register] err userRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	// registration always goes through OTP confirmation, never straight to a session
	if err := s.otpApp.SendCode(ctx, req.Phone); err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		Status: model.AuthStatusAwaitingOTP,
		Name:   userEntity.Name,
		Phone:  userEntity.Phone,
	}, nil
}

func (s *AuthAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{Phone: req.Phone})
	if err != nil {
		logger.Error("[Login] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrUserNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidPassword)
	}

	if !user.PhoneConfirmed {
		if err := s.otpApp.SendCode(ctx, user.Phone); err != nil {
			return nil, err
		}
		return &model.AuthResponse{
			Status: model.AuthStatusAwaitingOTP,
			Name:   user.Name,
			Phone:  user.Phone,
		}, nil
	}

	token, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		Status: model.AuthStatusAuthenticated,
		Name:   user.Name,
		Phone:  user.Phone,
		Token:  token,
	}, nil
}

func (s *AuthAppImpl) VerifyOTP(ctx context.Context, req *model.VerifyOTPRequest) (*model.AuthResponse, error) {
	user, err := s.otpApp.VerifyCode(ctx, req.Phone, req.Code)
	if err != nil {
		return nil, err
	}

	// first successful verification creates the public profile row
	profile, err := s.userRepo.GetProfile(ctx, user.ID)
	if err != nil {
		logger.Error("[VerifyOTP] err userRepo.GetProfile", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if profile == nil {
		if err := s.userRepo.UpsertProfile(ctx, &model.ProfileEntity{
			UserID: user.ID,
			Name:   user.Name,
			Phone:  user.Phone,
		}); err != nil {
			logger.Error("[VerifyOTP] err userRepo.UpsertProfile", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	token, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		Status: model.AuthStatusAuthenticated,
		Name:   user.Name,
		Phone:  user.Phone,
		Token:  token,
	}, nil
}

func (s *AuthAppImpl) ResendOTP(ctx context.Context, phone string) error {
	return s.otpApp.SendCode(ctx, phone)
}

func (s *AuthAppImpl) ValidateToken(ctx context.Context, tokenString string) (uint64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid claims")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id in token")
	}

	jti := claims.ID
	if jti == "" {
		return 0, fmt.Errorf("token missing jti")
	}

	redisUserID, err := s.redisRepo.GetSession(ctx, jti)
	if err != nil {
		return 0, fmt.Errorf("invalid or expired session")
	}
	if redisUserID != userID {
		return 0, fmt.Errorf("token does not match user session")
	}

	return userID, nil
}

func (s *AuthAppImpl) Logout(ctx context.Context, tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return errors.SetCustomError(constant.ErrUnauthorize)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ID == "" {
		return errors.SetCustomError(constant.ErrUnauthorize)
	}
	if err := s.redisRepo.DeleteSession(ctx, claims.ID); err != nil {
		logger.Error("[Logout] err DeleteSession", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *AuthAppImpl) UpdatePassword(ctx context.Context, req *model.UpdatePasswordRequest) error {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: req.UserID})
	if err != nil {
		logger.Error("[UpdatePassword] err userRepo.Get", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return errors.SetCustomError(constant.ErrUserNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return errors.SetCustomError(constant.ErrInvalidPassword)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("[UpdatePassword] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		logger.Error("[UpdatePassword] err userRepo.UpdatePassword", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *AuthAppImpl) GetProfile(ctx context.Context, userID uint64) (*model.ProfileEntity, error) {
	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		logger.Error("[GetProfile] err userRepo.GetProfile", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if profile == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return profile, nil
}

func (s *AuthAppImpl) UpdateProfile(ctx context.Context, req *model.UpdateProfileRequest) error {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: req.UserID})
	if err != nil {
		logger.Error("[UpdateProfile] err userRepo.Get", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return errors.SetCustomError(constant.ErrUserNotFound)
	}

	name := req.Name
	if name == "" {
		name = user.Name
	}

	if err := s.userRepo.UpsertProfile(ctx, &model.ProfileEntity{
		UserID:         user.ID,
		Name:           name,
		Phone:          user.Phone,
		GovernorateID:  req.GovernorateID,
		ProfilePicture: req.ProfilePicture,
	}); err != nil {
		logger.Error("[UpdateProfile] err userRepo.UpsertProfile", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

// issueSession creates the JWT and its Redis session entry.
func (s *AuthAppImpl) issueSession(ctx context.Context, userID uint64) (string, error) {
	token, jti, err := s.generateJWT(userID)
	if err != nil {
		logger.Error("[issueSession] err generateJWT", zap.String("error", err.Error()))
		return "", errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.redisRepo.SetSession(ctx, jti, userID, s.config.Auth.SessionExpTime); err != nil {
		logger.Error("[issueSession] err SetSession", zap.String("error", err.Error()))
		return "", errors.SetCustomError(constant.ErrInternal)
	}
	return token, nil
}

// generateJWT creates a JWT token for the user
func (s *AuthAppImpl) generateJWT(userID uint64) (string, string, error) {
	newUUID, _ := uuid.NewRandom()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", userID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.Auth.JWTExpiration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ID:        newUUID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims.ID, nil
}
