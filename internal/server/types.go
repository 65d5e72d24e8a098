package server

import "hr-interview-backend/internal/questions"

// Запросы валидируются на границе, внутренние операции получают уже
// типизированные аргументы.

type answerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

type questionRequest struct {
	Context string `json:"context,omitempty"`
}

type taskRequest struct {
	Candidate string `json:"candidate"`
	Position  string `json:"position"`
}

type historyEntry struct {
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
}

type legacyRequest struct {
	History []historyEntry `json:"history,omitempty"`
	Results []historyEntry `json:"results,omitempty"`
}

type questionPayload struct {
	ID   string             `json:"id"`
	Text string             `json:"text"`
	Type questions.Category `json:"type"`
}

type nextQuestionResponse struct {
	Questions          []questionPayload `json:"questions"`
	TotalQuestions     int               `json:"total_questions"`
	RemainingQuestions int               `json:"remaining_questions"`
	Completed          bool              `json:"completed,omitempty"`
	QuestionsAsked     int               `json:"questions_asked,omitempty"`
	AIGenerated        bool              `json:"ai_generated,omitempty"`
}

type answerResponse struct {
	Status             string `json:"status"`
	AnswersSaved       int    `json:"answers_saved"`
	TotalQuestions     int    `json:"total_questions"`
	RemainingQuestions int    `json:"remaining_questions"`
}

type taskResponse struct {
	Task    string `json:"task"`
	Example string `json:"example"`
}

type statsResponse struct {
	Sessions int `json:"sessions"`
	Answers  int `json:"answers"`
	AvgScore int `json:"avg_score"`
}
