package server

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RegisterAdminRoutes регистрирует служебные маршруты. Аутентификация
// не входит в задачу бэкенда и вешается снаружи.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/sessions", h.handleAdminSessions)
	r.Get("/stats", h.handleAdminStats)
	r.Post("/session/{token}/delete", h.handleAdminDeleteSession)
	r.Get("/export/sessions", h.handleExportSessions)
	r.Get("/export/log", h.handleExportLog)
}

func (h *Handler) handleAdminSessions(w http.ResponseWriter, r *http.Request) {
	sessions := h.sessions.Sessions(r.Context())

	list := make([]map[string]any, 0, len(sessions))
	for _, sess := range sessions {
		list = append(list, map[string]any{
			"token":         sess.Token,
			"created_at":    sess.CreatedAt,
			"completed":     sess.Completed,
			"answers":       len(sess.Answers),
			"total_answers": len(sess.AnswerLog),
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"sessions": list})
}

func (h *Handler) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	sessions := h.sessions.Sessions(r.Context())

	completed := 0
	totalAnswers := 0
	for _, sess := range sessions {
		if sess.Completed {
			completed++
		}
		totalAnswers += len(sess.Answers)
	}

	snapshot := h.metrics.GetSnapshot()
	respondJSON(w, http.StatusOK, map[string]any{
		"total":             len(sessions),
		"completed":         completed,
		"active":            len(sessions) - completed,
		"total_answers":     totalAnswers,
		"sessions_started":  snapshot.SessionsStarted,
		"questions_issued":  snapshot.QuestionsIssued,
		"answers_saved":     snapshot.AnswersSaved,
		"glyphs_generated":  snapshot.GlyphsGenerated,
		"api_calls_total":   snapshot.APICallsTotal,
		"api_calls_success": snapshot.APICallsSuccessful,
	})
}

func (h *Handler) handleAdminDeleteSession(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if err := h.sessions.Delete(r.Context(), token); err != nil {
		h.log.Error("ошибка удаления сессии", zap.String("token", token), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "не удалось удалить сессию")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) handleExportSessions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=sessions.csv")

	writer := csv.NewWriter(w)
	defer writer.Flush()

	_ = writer.Write([]string{"token", "created_at", "completed", "answers", "answer_log"})
	for _, sess := range h.sessions.Sessions(r.Context()) {
		_ = writer.Write([]string{
			sess.Token,
			sess.CreatedAt.Format(time.RFC3339),
			fmt.Sprintf("%t", sess.Completed),
			fmt.Sprintf("%d", len(sess.Answers)),
			fmt.Sprintf("%d", len(sess.AnswerLog)),
		})
	}
}

func (h *Handler) handleExportLog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=log.csv")

	writer := csv.NewWriter(w)
	defer writer.Flush()

	_ = writer.Write([]string{"time", "action", "details"})
	for _, event := range h.events.Snapshot() {
		_ = writer.Write([]string{
			event.Time,
			event.Action,
			fmt.Sprintf("%v", event.Details),
		})
	}
}
