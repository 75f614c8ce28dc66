package social

import (
	"context"
	"time"

	"github.com/souqhub/marketplace/constant"
	"github.com/souqhub/marketplace/model"
	socialrepo "github.com/souqhub/marketplace/repository/social"
	userrepo "github.com/souqhub/marketplace/repository/user"
	"github.com/souqhub/marketplace/thirdparty/rabbitmq"
	"github.com/souqhub/marketplace/utils/errors"
	"github.com/souqhub/marketplace/utils/logger"
	"go.uber.org/zap"
)

// NotificationPublisher is the slice of the RabbitMQ publisher this app uses.
type NotificationPublisher interface {
	PublishMessageNotification(msg rabbitmq.MessageNotification) error
}

type SocialApp interface {
	AddFavorite(ctx context.Context, req *model.AddFavoriteRequest) error
	RemoveFavorite(ctx context.Context, userID, listingID uint64) error
	ListFavorites(ctx context.Context, userID uint64) ([]model.FavoriteEntity, error)
	SendMessage(ctx context.Context, req *model.SendMessageRequest) (uint64, error)
	ListConversation(ctx context.Context, userID, peerID uint64) ([]model.MessageEntity, error)
	CreateReport(ctx context.Context, req *model.CreateReportRequest) error
}

type socialAppImpl struct {
	socialRepo socialrepo.SocialRepository
	userRepo   userrepo.UserRepository
	publisher  NotificationPublisher
}

func NewSocialApp(socialRepo socialrepo.SocialRepository, userRepo userrepo.UserRepository, publisher NotificationPublisher) SocialApp {
	return &socialAppImpl{
		socialRepo: socialRepo,
		userRepo:   userRepo,
		publisher:  publisher,
	}
}

func (s *socialAppImpl) AddFavorite(ctx context.Context, req *model.AddFavoriteRequest) error {
	if err := s.socialRepo.AddFavorite(ctx, req.UserID, req.ListingID); err != nil {
		logger.Error("[AddFavorite] err socialRepo.AddFavorite", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *socialAppImpl) RemoveFavorite(ctx context.Context, userID, listingID uint64) error {
	if err := s.socialRepo.RemoveFavorite(ctx, userID, listingID); err != nil {
		logger.Error("[RemoveFavorite] err socialRepo.RemoveFavorite", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *socialAppImpl) ListFavorites(ctx context.Context, userID uint64) ([]model.FavoriteEntity, error) {
	items, err := s.socialRepo.ListFavorites(ctx, userID)
	if err != nil {
		logger.Error("[ListFavorites] err socialRepo.ListFavorites", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}

// SendMessage stores the message and queues a notification for the
// recipient. A failed publish is logged only; the message itself is saved.
func (s *socialAppImpl) SendMessage(ctx context.Context, req *model.SendMessageRequest) (uint64, error) {
	if req.SenderID == req.RecipientID {
		return 0, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	recipient, err := s.userRepo.Get(ctx, &model.UserFilter{ID: req.RecipientID})
	if err != nil {
		logger.Error("[SendMessage] err userRepo.Get recipient", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	if recipient == nil {
		return 0, errors.SetCustomError(constant.ErrUserNotFound)
	}

	sender, err := s.userRepo.Get(ctx, &model.UserFilter{ID: req.SenderID})
	if err != nil {
		logger.Error("[SendMessage] err userRepo.Get sender", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	if sender == nil {
		return 0, errors.SetCustomError(constant.ErrUserNotFound)
	}

	msgID, err := s.socialRepo.InsertMessage(ctx, &model.MessageEntity{
		SenderID:    req.SenderID,
		RecipientID: req.RecipientID,
		ListingID:   req.ListingID,
		Body:        req.Body,
	})
	if err != nil {
		logger.Error("[SendMessage] err socialRepo.InsertMessage", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}

	if s.publisher != nil {
		notification := rabbitmq.MessageNotification{
			MessageID:      msgID,
			SenderID:       sender.ID,
			SenderName:     sender.Name,
			RecipientID:    recipient.ID,
			RecipientPhone: recipient.Phone,
			ListingID:      req.ListingID,
			SentAt:         time.Now(),
		}
		if err := s.publisher.PublishMessageNotification(notification); err != nil {
			logger.Error("[SendMessage] publish notification", zap.String("error", err.Error()))
		}
	}

	return msgID, nil
}

func (s *socialAppImpl) ListConversation(ctx context.Context, userID, peerID uint64) ([]model.MessageEntity, error) {
	items, err := s.socialRepo.ListConversation(ctx, userID, peerID)
	if err != nil {
		logger.Error("[ListConversation] err socialRepo.ListConversation", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.socialRepo.MarkRead(ctx, userID, peerID); err != nil {
		logger.Warn("[ListConversation] err socialRepo.MarkRead", zap.String("error", err.Error()))
	}

	return items, nil
}

func (s *socialAppImpl) CreateReport(ctx context.Context, req *model.CreateReportRequest) error {
	if _, err := s.socialRepo.InsertReport(ctx, &model.ReportEntity{
		UserID:    req.UserID,
		ListingID: req.ListingID,
		Reason:    req.Reason,
	}); err != nil {
		logger.Error("[CreateReport] err socialRepo.InsertReport", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}
