package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"hr-interview-backend/internal/report"
)

// Старые эндпоинты работают без токена и не трогают состояние сессий.
// Оставлены для клиентов, не перешедших на токенный API.

func (h *Handler) handleLegacyQuestion(w http.ResponseWriter, r *http.Request) {
	var payload legacyRequest
	_ = json.NewDecoder(r.Body).Decode(&payload)

	bank := h.sessions.Bank()
	if len(payload.History) >= bank.Size() {
		respondJSON(w, http.StatusOK, map[string]any{"questions": []questionPayload{}})
		return
	}

	remaining := bank.All()[len(payload.History):]
	questions := make([]map[string]any, 0, len(remaining))
	for _, q := range remaining {
		questions = append(questions, map[string]any{
			"text": q.Text,
			"type": q.Category,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"questions":           questions,
		"total_questions":     bank.Size(),
		"remaining_questions": len(remaining),
	})
}

func (h *Handler) handleLegacyGlyph(w http.ResponseWriter, r *http.Request) {
	var payload legacyRequest
	_ = json.NewDecoder(r.Body).Decode(&payload)

	answers := make([]string, 0, len(payload.Results))
	for _, entry := range payload.Results {
		answers = append(answers, entry.Answer)
	}

	h.events.Record("generate_glyph_legacy", map[string]any{"results": len(answers)})
	respondJSON(w, http.StatusOK, report.LegacyGlyph(answers))
}

func (h *Handler) handleLegacySummary(w http.ResponseWriter, r *http.Request) {
	var payload legacyRequest
	_ = json.NewDecoder(r.Body).Decode(&payload)

	if len(payload.History) == 0 {
		respondJSON(w, http.StatusOK, map[string]string{
			"summary":        "Недостаточно данных для анализа",
			"recommendation": "Необходимо ответить на вопросы",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"glyph":          "📊 Анализ завершен",
		"summary":        fmt.Sprintf("Кандидат ответил на %d вопросов. Показал базовые профессиональные навыки.", len(payload.History)),
		"recommendation": "Рекомендуется к дальнейшему рассмотрению",
	})
}

func (h *Handler) handleLegacyTask(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, taskResponse{
		Task:    "Опишите ваш подход к решению сложных задач",
		Example: "Анализирую проблему, разбиваю на части, ищу решения, тестирую и внедряю",
	})
}
