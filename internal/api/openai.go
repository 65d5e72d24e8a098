// Package api содержит клиент OpenAI Chat Completions для генерации
// дополнительных вопросов интервью и тестовых заданий.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"hr-interview-backend/internal/metrics"
	"hr-interview-backend/internal/questions"
)

const defaultBaseURL = "https://api.openai.com/v1"

type OpenAIClient struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	client      *http.Client
	metrics     *metrics.Metrics
	log         *zap.Logger
}

type OpenAIRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	ID      string    `json:"id"`
	Object  string    `json:"object"`
	Created int64     `json:"created"`
	Model   string    `json:"model"`
	Choices []Choice  `json:"choices"`
	Usage   Usage     `json:"usage"`
	Error   *APIError `json:"error,omitempty"`
}

type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// NewOpenAIClient создает клиент генерации. Таймаут ограничивает каждый
// запрос, отказ генерации не должен задерживать выдачу вопросов.
func NewOpenAIClient(apiKey, model, baseURL string, temperature float64, timeout time.Duration, m *metrics.Metrics, log *zap.Logger) *OpenAIClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &OpenAIClient{
		apiKey:      apiKey,
		model:       model,
		baseURL:     baseURL,
		temperature: temperature,
		client: &http.Client{
			Timeout: timeout,
		},
		metrics: m,
		log:     log,
	}
}

// chat выполняет один запрос к Chat Completions и возвращает текст ответа
func (c *OpenAIClient) chat(ctx context.Context, messages []Message, maxTokens int) (string, error) {
	reqBody := OpenAIRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   maxTokens,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		c.countCall(false)
		return "", fmt.Errorf("ошибка запроса к OpenAI: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.countCall(false)
		return "", fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.countCall(false)
		return "", fmt.Errorf("OpenAI API вернул статус %d: %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.Unmarshal(body, &openAIResp); err != nil {
		c.countCall(false)
		return "", fmt.Errorf("ошибка парсинга ответа: %w", err)
	}

	if openAIResp.Error != nil {
		c.countCall(false)
		return "", fmt.Errorf("ошибка OpenAI API: %s", openAIResp.Error.Message)
	}
	if len(openAIResp.Choices) == 0 {
		c.countCall(false)
		return "", fmt.Errorf("OpenAI API не вернул вариантов ответа")
	}

	c.countCall(true)
	return openAIResp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) countCall(success bool) {
	if c.metrics != nil {
		c.metrics.IncrementAPICall(success)
	}
}

type generatedQuestion struct {
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Keywords []string `json:"keywords"`
}

// GenerateQuestion запрашивает у модели новый вопрос интервью.
// Тип вопроса выравнивает баланс технических и soft-вопросов.
func (c *OpenAIClient) GenerateQuestion(ctx context.Context, technicalAsked, softAsked, totalAsked int) (questions.Question, error) {
	questionType := string(questions.CategorySoft)
	if technicalAsked < softAsked {
		questionType = string(questions.CategoryTechnical)
	}

	prompt := fmt.Sprintf(`Ты - опытный HR-специалист, проводящий интервью.
Сгенерируй профессиональный вопрос для кандидата.

Тип вопроса: %s
Уже задано вопросов: %d

Вопрос должен быть:
- Профессиональным и релевантным
- Открытым (требующим развернутого ответа)
- Адаптированным под уровень кандидата
- Не повторяющим стандартные вопросы

Верни ответ в формате JSON:
{
    "text": "текст вопроса",
    "type": "%s",
    "keywords": ["ключевые", "слова", "для", "анализа"]
}`, questionType, totalAsked, questionType)

	content, err := c.chat(ctx, []Message{
		{Role: "system", Content: "Ты - опытный HR-специалист. Генерируй только валидный JSON."},
		{Role: "user", Content: prompt},
	}, 300)
	if err != nil {
		return questions.Question{}, err
	}

	var generated generatedQuestion
	if err := json.Unmarshal([]byte(cleanJSONResponse(content)), &generated); err != nil {
		return questions.Question{}, fmt.Errorf("ошибка парсинга сгенерированного вопроса: %w", err)
	}
	if generated.Text == "" {
		return questions.Question{}, fmt.Errorf("генератор вернул пустой вопрос")
	}

	category := questions.Category(generated.Type)
	if category != questions.CategoryTechnical && category != questions.CategorySoft {
		category = questions.CategorySoft
	}
	keywords := generated.Keywords
	if len(keywords) == 0 {
		keywords = []string{"опыт", "команда", "работа"}
	}

	return questions.Question{
		ID:       fmt.Sprintf("ai_q_%d_%d", totalAsked+1, time.Now().Unix()),
		Text:     generated.Text,
		Category: category,
		Keywords: keywords,
	}, nil
}

type generatedTask struct {
	Task    string `json:"task"`
	Example string `json:"example"`
}

// GenerateTask запрашивает тестовое задание для кандидата на позицию
func (c *OpenAIClient) GenerateTask(ctx context.Context, candidate, position string) (string, string, error) {
	prompt := fmt.Sprintf(
		"Сгенерируй тестовое задание для кандидата %s на позицию %s и пример его выполнения. Ответ верни в формате JSON: {\"task\": \"...\", \"example\": \"...\"}",
		candidate, position)

	content, err := c.chat(ctx, []Message{
		{Role: "system", Content: "Ты - опытный HR-специалист. Генерируй только валидный JSON."},
		{Role: "user", Content: prompt},
	}, 500)
	if err != nil {
		return "", "", err
	}

	var generated generatedTask
	if err := json.Unmarshal([]byte(cleanJSONResponse(content)), &generated); err != nil {
		return "", "", fmt.Errorf("ошибка парсинга сгенерированного задания: %w", err)
	}
	if generated.Task == "" {
		return "", "", fmt.Errorf("генератор вернул пустое задание")
	}

	return generated.Task, generated.Example, nil
}

// cleanJSONResponse удаляет markdown форматирование из ответа
func cleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```", "")
	return strings.TrimSpace(response)
}
