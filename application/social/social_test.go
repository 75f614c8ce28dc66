package social_test

import (
	"context"
	"errors"
	"testing"

	appsocial "github.com/souqhub/marketplace/application/social"
	"github.com/souqhub/marketplace/constant"
	socialappmocks "github.com/souqhub/marketplace/mocks/application/social"
	socialmocks "github.com/souqhub/marketplace/mocks/repository/social"
	usermocks "github.com/souqhub/marketplace/mocks/repository/user"
	"github.com/souqhub/marketplace/model"
	"github.com/souqhub/marketplace/thirdparty/rabbitmq"
	cerr "github.com/souqhub/marketplace/utils/errors"
	"github.com/stretchr/testify/mock"
)

func TestSocialApp_SendMessage(t *testing.T) {
	type fields struct {
		socialRepo *socialmocks.SocialRepository
		userRepo   *usermocks.UserRepository
		publisher  *socialappmocks.NotificationPublisher
	}
	type args struct {
		ctx context.Context
		req *model.SendMessageRequest
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		want     uint64
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: message stored and notification queued",
			fields: fields{
				socialRepo: socialmocks.NewSocialRepository(t),
				userRepo:   usermocks.NewUserRepository(t),
				publisher:  socialappmocks.NewNotificationPublisher(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.SendMessageRequest{
					SenderID:    1,
					RecipientID: 2,
					Body:        "هل السيارة متوفرة؟",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: uint64(2)}).
					Return(&model.UserEntity{ID: 2, Name: "Seller", Phone: "+963992222222"}, nil).
					Once()

				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: uint64(1)}).
					Return(&model.UserEntity{ID: 1, Name: "Buyer", Phone: "+963991111111"}, nil).
					Once()

				f.socialRepo.
					On("InsertMessage", mock.Anything, mock.MatchedBy(func(msg *model.MessageEntity) bool {
						return msg.SenderID == 1 && msg.RecipientID == 2 && msg.Body == "هل السيارة متوفرة؟"
					})).
					Return(uint64(100), nil).
					Once()

				f.publisher.
					On("PublishMessageNotification", mock.MatchedBy(func(n rabbitmq.MessageNotification) bool {
						return n.MessageID == 100 &&
							n.SenderName == "Buyer" &&
							n.RecipientPhone == "+963992222222"
					})).
					Return(nil).
					Once()
			},
			want:    100,
			wantErr: false,
		},
		{
			name: "success: failed publish does not fail the send",
			fields: fields{
				socialRepo: socialmocks.NewSocialRepository(t),
				userRepo:   usermocks.NewUserRepository(t),
				publisher:  socialappmocks.NewNotificationPublisher(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.SendMessageRequest{
					SenderID:    1,
					RecipientID: 2,
					Body:        "مرحبا",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: uint64(2)}).
					Return(&model.UserEntity{ID: 2, Phone: "+963992222222"}, nil).
					Once()

				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: uint64(1)}).
					Return(&model.UserEntity{ID: 1, Phone: "+963991111111"}, nil).
					Once()

				f.socialRepo.
					On("InsertMessage", mock.Anything, mock.AnythingOfType("*model.MessageEntity")).
					Return(uint64(101), nil).
					Once()

				f.publisher.
					On("PublishMessageNotification", mock.AnythingOfType("rabbitmq.MessageNotification")).
					Return(errors.New("broker down")).
					Once()
			},
			want:    101,
			wantErr: false,
		},
		{
			name: "error: sending to yourself",
			fields: fields{
				socialRepo: socialmocks.NewSocialRepository(t),
				userRepo:   usermocks.NewUserRepository(t),
				publisher:  socialappmocks.NewNotificationPublisher(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.SendMessageRequest{
					SenderID:    1,
					RecipientID: 1,
					Body:        "test",
				},
			},
			mockCall: nil,
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name: "error: recipient does not exist",
			fields: fields{
				socialRepo: socialmocks.NewSocialRepository(t),
				userRepo:   usermocks.NewUserRepository(t),
				publisher:  socialappmocks.NewNotificationPublisher(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.SendMessageRequest{
					SenderID:    1,
					RecipientID: 404,
					Body:        "test",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: uint64(404)}).
					Return(nil, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrUserNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				ttFields := tt.fields
				tt.mockCall(ttFields)
			}
			app := appsocial.NewSocialApp(tt.fields.socialRepo, tt.fields.userRepo, tt.fields.publisher)

			got, err := app.SendMessage(tt.args.ctx, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SendMessage() error = %v, wantErr %v", err, tt.wantErr)
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

			if got != tt.want {
				t.Fatalf("SendMessage() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSocialApp_ListConversation(t *testing.T) {
	t.Run("success: fetch marks the thread read", func(t *testing.T) {
		socialRepo := socialmocks.NewSocialRepository(t)
		userRepo := usermocks.NewUserRepository(t)
		publisher := socialappmocks.NewNotificationPublisher(t)
		app := appsocial.NewSocialApp(socialRepo, userRepo, publisher)

		socialRepo.
			On("ListConversation", mock.Anything, uint64(1), uint64(2)).
			Return([]model.MessageEntity{{ID: 1, SenderID: 2, RecipientID: 1, Body: "مرحبا"}}, nil).
			Once()
		socialRepo.
			On("MarkRead", mock.Anything, uint64(1), uint64(2)).
			Return(nil).
			Once()

		got, err := app.ListConversation(context.Background(), 1, 2)
		if err != nil {
			t.Fatalf("ListConversation() error = %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("ListConversation() = %d messages, want 1", len(got))
		}
	})

	t.Run("success: mark-read failure is tolerated", func(t *testing.T) {
		socialRepo := socialmocks.NewSocialRepository(t)
		userRepo := usermocks.NewUserRepository(t)
		publisher := socialappmocks.NewNotificationPublisher(t)
		app := appsocial.NewSocialApp(socialRepo, userRepo, publisher)

		socialRepo.
			On("ListConversation", mock.Anything, uint64(1), uint64(2)).
			Return([]model.MessageEntity{}, nil).
			Once()
		socialRepo.
			On("MarkRead", mock.Anything, uint64(1), uint64(2)).
			Return(errors.New("db error")).
			Once()

		if _, err := app.ListConversation(context.Background(), 1, 2); err != nil {
			t.Fatalf("ListConversation() error = %v", err)
		}
	})
}
