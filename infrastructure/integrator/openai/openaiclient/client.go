// Package openaiclient encapsula as chamadas HTTP à API de chat completions
// usada pelo serviço de narrativa
package openaiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/oraculo-comercial-api/internal/config"
)

type Client interface {
	ChatCompletion(ctx context.Context, system, user string, jsonMode bool) (string, error)
}

type OpenAIClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &OpenAIClient{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		config: cfg,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// ChatCompletion envia o par system/user e retorna o texto da primeira
// escolha. Com jsonMode ativo a API é instruída a responder JSON puro
func (c *OpenAIClient) ChatCompletion(ctx context.Context, system, user string, jsonMode bool) (string, error) {
	request := chatCompletionRequest{
		Model: c.config.OpenAI.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.config.OpenAI.Temperature,
	}
	if jsonMode {
		request.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar requisição: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.config.OpenAI.URL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.OpenAI.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao chamar o serviço de narrativa")
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("erro ao ler resposta do serviço de narrativa: %w", err)
	}

	var response chatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("erro ao decodificar resposta do serviço de narrativa: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if response.Error != nil {
			return "", fmt.Errorf("serviço de narrativa respondeu %d: %s", resp.StatusCode, response.Error.Message)
		}
		return "", fmt.Errorf("serviço de narrativa respondeu %d", resp.StatusCode)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("serviço de narrativa não retornou conteúdo")
	}

	return response.Choices[0].Message.Content, nil
}
