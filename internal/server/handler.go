// Package server связывает машину состояний сессий с HTTP-транспортом:
// валидация запросов, маршрутизация и трансляция ошибок в коды ответа.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hr-interview-backend/internal/api"
	"hr-interview-backend/internal/audit"
	"hr-interview-backend/internal/metrics"
	"hr-interview-backend/internal/report"
	"hr-interview-backend/internal/session"
)

// Handler обслуживает публичный API интервью
type Handler struct {
	sessions *session.Service
	ai       *api.OpenAIClient
	metrics  *metrics.Metrics
	events   *audit.Log
	log      *zap.Logger
}

// NewHandler создает обработчик. ai может быть nil, тогда задания
// выдаются из статического резерва.
func NewHandler(sessions *session.Service, ai *api.OpenAIClient, m *metrics.Metrics, events *audit.Log, log *zap.Logger) *Handler {
	if m == nil {
		m = metrics.NewMetrics()
	}
	if events == nil {
		events = audit.NewLog()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		sessions: sessions,
		ai:       ai,
		metrics:  m,
		events:   events,
		log:      log,
	}
}

// RegisterRoutes регистрирует публичные маршруты API
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Get("/session/{token}", h.handleGetSession)
	r.Post("/session/{token}/answer", h.handleSubmitAnswer)
	r.Post("/session/{token}/complete", h.handleCompleteSession)
	r.Get("/result/{token}", h.handleGetResult)
	r.Get("/stats", h.handleStats)

	r.Post("/interview/question/{token}", h.handleNextQuestion)
	r.Post("/interview/glyph/{token}", h.handleGlyph)
	r.Post("/interview/summary/{token}", h.handleSummary)
	r.Post("/interview/task/{token}", h.handleTask)

	// Старые эндпоинты без токена, для обратной совместимости
	r.Post("/interview/question", h.handleLegacyQuestion)
	r.Post("/interview/glyph", h.handleLegacyGlyph)
	r.Post("/interview/summary", h.handleLegacySummary)
	r.Post("/interview/task", h.handleLegacyTask)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Create(r.Context())
	if err != nil {
		h.log.Error("ошибка создания сессии", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "не удалось создать сессию")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": sess.Token})
}

func (h *Handler) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	// Тело запроса опционально и сейчас не влияет на выбор вопроса
	var payload questionRequest
	_ = json.NewDecoder(r.Body).Decode(&payload)

	next, err := h.sessions.NextQuestion(r.Context(), token)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	if next.Completed {
		respondJSON(w, http.StatusOK, nextQuestionResponse{
			Questions:          []questionPayload{},
			TotalQuestions:     next.TotalQuestions,
			RemainingQuestions: 0,
			Completed:          true,
			QuestionsAsked:     next.QuestionsAsked,
		})
		return
	}

	respondJSON(w, http.StatusOK, nextQuestionResponse{
		Questions: []questionPayload{{
			ID:   next.Question.ID,
			Text: next.Question.Text,
			Type: next.Question.Category,
		}},
		TotalQuestions:     next.TotalQuestions,
		RemainingQuestions: next.Remaining,
		AIGenerated:        next.AIGenerated,
	})
}

func (h *Handler) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var payload answerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "некорректное тело запроса")
		return
	}
	if payload.QuestionID == "" {
		respondError(w, http.StatusBadRequest, "отсутствует ID вопроса")
		return
	}

	result, err := h.sessions.SubmitAnswer(r.Context(), token, payload.QuestionID, payload.Answer)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, answerResponse{
		Status:             "saved",
		AnswersSaved:       result.AnswersSaved,
		TotalQuestions:     result.TotalQuestions,
		RemainingQuestions: result.Remaining,
	})
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	status, err := h.sessions.Status(r.Context(), token)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

func (h *Handler) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if err := h.sessions.Complete(r.Context(), token); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

func (h *Handler) handleGetResult(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	result, err := h.sessions.Result(r.Context(), token)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGlyph(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	sess, err := h.sessions.Snapshot(r.Context(), token)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	glyph := report.BuildGlyph(sess.Answers, h.sessions.Bank())
	h.metrics.IncrementGlyphsGenerated()
	h.events.Record("generate_glyph", map[string]any{
		"token":         token,
		"answers_count": len(sess.Answers),
	})
	respondJSON(w, http.StatusOK, glyph)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	sess, err := h.sessions.Snapshot(r.Context(), token)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	summary := report.BuildSummary(sess.Answers, h.sessions.Bank(), sess.CreatedAt)
	h.events.Record("summary", map[string]any{
		"token":         token,
		"answers_count": len(sess.Answers),
	})
	respondJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// Резервное задание на случай недоступности генератора
func fallbackTask(position string) taskResponse {
	return taskResponse{
		Task:    "Создайте план развития команды из 5 человек для " + position + ". Включите: 1) Анализ текущих навыков 2) Определение целей 3) План обучения 4) Метрики успеха 5) Временные рамки",
		Example: "Пример: Анализ показал нехватку навыков в области проектного управления. Цель - повысить эффективность на 30%. План включает тренинги, менторство и практические проекты на 3 месяца.",
	}
}

func (h *Handler) handleTask(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if _, err := h.sessions.Snapshot(r.Context(), token); err != nil {
		h.respondServiceError(w, err)
		return
	}

	var payload taskRequest
	_ = json.NewDecoder(r.Body).Decode(&payload)
	if payload.Candidate == "" {
		payload.Candidate = "Кандидат"
	}
	if payload.Position == "" {
		payload.Position = "Специалист"
	}

	if h.ai != nil {
		task, example, err := h.ai.GenerateTask(r.Context(), payload.Candidate, payload.Position)
		if err == nil {
			respondJSON(w, http.StatusOK, taskResponse{Task: task, Example: example})
			return
		}
		h.log.Warn("генератор заданий недоступен, используется резервное задание",
			zap.String("token", token),
			zap.Error(err))
	}

	respondJSON(w, http.StatusOK, fallbackTask(payload.Position))
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	sessions := h.sessions.Sessions(r.Context())
	answers := 0
	for _, sess := range sessions {
		answers += len(sess.Answers)
	}
	avgScore := 0
	if len(sessions) > 0 {
		avgScore = 50
	}
	respondJSON(w, http.StatusOK, statsResponse{
		Sessions: len(sessions),
		Answers:  answers,
		AvgScore: avgScore,
	})
}

// respondServiceError транслирует ошибки машины состояний в HTTP-коды
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrExpired),
		errors.Is(err, session.ErrAlreadyCompleted):
		status = http.StatusForbidden
	case errors.Is(err, session.ErrQuestionNotIssued),
		errors.Is(err, session.ErrDuplicateAnswer),
		errors.Is(err, session.ErrInvalidAnswer),
		errors.Is(err, session.ErrAnswerTooShort):
		status = http.StatusBadRequest
	case errors.Is(err, session.ErrBankExhausted):
		status = http.StatusInternalServerError
	}
	respondError(w, status, err.Error())
}

// respondJSON отправляет JSON-ответ
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Warn("ошибка кодирования ответа", zap.Error(err))
	}
}

// respondError отправляет ошибку в формате JSON
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
