package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-interview-backend/internal/metrics"
	"hr-interview-backend/internal/questions"
)

// fakeOpenAI поднимает сервер, отвечающий фиксированным содержимым
// на /chat/completions
func fakeOpenAI(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(OpenAIResponse{
			Choices: []Choice{{Message: Message{Role: "assistant", Content: content}}},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestClient(baseURL string, m *metrics.Metrics) *OpenAIClient {
	return NewOpenAIClient("test-key", "gpt-3.5-turbo", baseURL, 0.7, 5*time.Second, m, nil)
}

func TestGenerateQuestion(t *testing.T) {
	content := "```json\n{\"text\": \"Какие инструменты вы используете?\", \"type\": \"technical\", \"keywords\": [\"инструменты\", \"стек\"]}\n```"
	server := fakeOpenAI(t, http.StatusOK, content)

	m := metrics.NewMetrics()
	client := newTestClient(server.URL, m)

	q, err := client.GenerateQuestion(context.Background(), 2, 3, 10)
	require.NoError(t, err)

	assert.Equal(t, "Какие инструменты вы используете?", q.Text)
	assert.Equal(t, questions.CategoryTechnical, q.Category)
	assert.Equal(t, []string{"инструменты", "стек"}, q.Keywords)
	assert.Contains(t, q.ID, "ai_q_11_")

	snapshot := m.GetSnapshot()
	assert.Equal(t, int64(1), snapshot.APICallsTotal)
	assert.Equal(t, int64(1), snapshot.APICallsSuccessful)
}

func TestGenerateQuestionDefaults(t *testing.T) {
	// Неизвестный тип и пустые ключевые слова заменяются значениями по умолчанию
	content := `{"text": "Вопрос без метаданных?", "type": "unknown", "keywords": []}`
	server := fakeOpenAI(t, http.StatusOK, content)

	client := newTestClient(server.URL, nil)

	q, err := client.GenerateQuestion(context.Background(), 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, questions.CategorySoft, q.Category)
	assert.Equal(t, []string{"опыт", "команда", "работа"}, q.Keywords)
}

func TestGenerateQuestionEmptyText(t *testing.T) {
	server := fakeOpenAI(t, http.StatusOK, `{"text": "", "type": "soft"}`)

	client := newTestClient(server.URL, nil)

	_, err := client.GenerateQuestion(context.Background(), 0, 0, 0)
	assert.Error(t, err)
}

func TestGenerateQuestionAPIFailure(t *testing.T) {
	server := fakeOpenAI(t, http.StatusInternalServerError, "")

	m := metrics.NewMetrics()
	client := newTestClient(server.URL, m)

	_, err := client.GenerateQuestion(context.Background(), 0, 0, 0)
	require.Error(t, err)

	snapshot := m.GetSnapshot()
	assert.Equal(t, int64(1), snapshot.APICallsTotal)
	assert.Equal(t, int64(0), snapshot.APICallsSuccessful)
}

func TestGenerateQuestionInvalidJSON(t *testing.T) {
	server := fakeOpenAI(t, http.StatusOK, "это не JSON")

	client := newTestClient(server.URL, nil)

	_, err := client.GenerateQuestion(context.Background(), 0, 0, 0)
	assert.Error(t, err)
}

func TestGenerateTask(t *testing.T) {
	content := `{"task": "Составьте план спринта", "example": "Пример плана на две недели"}`
	server := fakeOpenAI(t, http.StatusOK, content)

	client := newTestClient(server.URL, nil)

	task, example, err := client.GenerateTask(context.Background(), "Иван", "Тимлид")
	require.NoError(t, err)
	assert.Equal(t, "Составьте план спринта", task)
	assert.Equal(t, "Пример плана на две недели", example)
}

func TestGenerateTaskEmptyTask(t *testing.T) {
	server := fakeOpenAI(t, http.StatusOK, `{"task": "", "example": "x"}`)

	client := newTestClient(server.URL, nil)

	_, _, err := client.GenerateTask(context.Background(), "Иван", "Тимлид")
	assert.Error(t, err)
}

func TestCleanJSONResponse(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, cleanJSONResponse("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, cleanJSONResponse("```\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, cleanJSONResponse(`{"a": 1}`))
}
