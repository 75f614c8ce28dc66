package chat

import (
	"context"

	"github.com/souqhub/marketplace/constant"
	"github.com/souqhub/marketplace/model"
	"github.com/souqhub/marketplace/thirdparty/llm"
	"github.com/souqhub/marketplace/utils/errors"
	"github.com/souqhub/marketplace/utils/logger"
	"go.uber.org/zap"
)

type ChatApp interface {
	Complete(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error)
}

type chatAppImpl struct {
	llmClient llm.Client
}

func NewChatApp(llmClient llm.Client) ChatApp {
	return &chatAppImpl{llmClient: llmClient}
}

const (
	systemPromptAR = "أنت مساعد سوق هب، منصة إعلانات مبوبة سورية. ساعد المستخدمين بإيجاد الإعلانات، نشرها، وفهم طريقة استخدام الموقع. أجب بالعربية وباختصار."
	systemPromptEN = "You are the SouqHub assistant for a Syrian classified-ads marketplace. Help users find and post listings and understand how the site works. Answer in English, briefly."
)

// Complete prepends the localized system prompt and forwards the conversation.
func (s *chatAppImpl) Complete(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error) {
	prompt := systemPromptEN
	if req.Language == constant.LanguageArabic {
		prompt = systemPromptAR
	}

	messages := make([]llm.Message, 0, len(req.Messages)+1)
	messages = append(messages, llm.Message{Role: "system", Content: prompt})
	for _, m := range req.Messages {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	reply, err := s.llmClient.Complete(ctx, messages)
	if err != nil {
		logger.Error("[Complete] err llmClient.Complete", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.ChatResponse{Reply: reply}, nil
}
