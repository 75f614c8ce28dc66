package model

import "github.com/souqhub/marketplace/constant"

// ChatMessage is one turn of the assistant widget conversation.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	Language constant.Language `json:"language" validate:"required,oneof=ar en"`
	Messages []ChatMessage     `json:"messages" validate:"required,min=1,dive"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
