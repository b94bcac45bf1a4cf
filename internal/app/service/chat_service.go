package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"learndeck/internal/common"
	"learndeck/internal/platform/config"
)

// thinkTagPattern strips chain-of-thought blocks some models prepend to
// their replies.
var thinkTagPattern = regexp.MustCompile(`(?s)<think>.*?</think>`)

const chatSystemPrompt = "You are an assistant for a learning platform. " +
	"Use the following lesson content to answer the user's question. " +
	"Be concise and direct.\n\n---LESSON CONTENT---\n%s\n---END LESSON CONTENT---"

// ChatService proxies conversations to an OpenAI-compatible completions API,
// grounding them in the current lesson's content.
type ChatService struct {
	client *http.Client
	logger *zap.Logger
}

func NewChatService(logger *zap.Logger) *ChatService {
	return &ChatService{
		client: &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages      []ChatMessage `json:"messages"`
	LessonContext string        `json:"lessonContext"`
	Model         string        `json:"model"`
}

// UpstreamError carries a non-2xx reply from the model API so the handler
// can forward the upstream status.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream API returned %d: %s", e.StatusCode, e.Body)
}

func (s *ChatService) Complete(ctx context.Context, req ChatRequest) (string, error) {
	if len(req.Messages) == 0 {
		return "", common.ErrValidation
	}
	if config.AppConfig.ChatAPIKey == "" {
		s.logger.Error("chat API key is not configured")
		return "", common.ErrInternalServer
	}

	lessonContext := req.LessonContext
	if lessonContext == "" {
		lessonContext = "No context provided."
	}
	model := req.Model
	if model == "" {
		model = config.AppConfig.ChatDefaultModel
	}

	messages := make([]ChatMessage, 0, len(req.Messages)+1)
	messages = append(messages, ChatMessage{
		Role:    "system",
		Content: fmt.Sprintf(chatSystemPrompt, lessonContext),
	})
	messages = append(messages, req.Messages...)

	payload, err := json.Marshal(map[string]interface{}{
		"model":    model,
		"messages": messages,
	})
	if err != nil {
		return "", err
	}

	url := strings.TrimSuffix(config.AppConfig.ChatAPIURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+config.AppConfig.ChatAPIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", common.ErrInternalServer
	}

	content := strings.TrimSpace(thinkTagPattern.ReplaceAllString(parsed.Choices[0].Message.Content, ""))
	if content == "" {
		return "", common.ErrInternalServer
	}
	return content, nil
}

// ListModels proxies the upstream model catalogue untouched.
func (s *ChatService) ListModels(ctx context.Context) (json.RawMessage, error) {
	url := strings.TrimSuffix(config.AppConfig.ChatAPIURL, "/") + "/models"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+config.AppConfig.ChatAPIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return json.RawMessage(body), nil
}
