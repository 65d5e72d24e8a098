package session

import "time"

// DefaultTTL определяет срок жизни сессии с момента создания
const DefaultTTL = time.Hour

// AnswerRecord представляет одну запись в журнале ответов
type AnswerRecord struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// Session представляет состояние одного интервью, привязанное к токену.
// Токен выдается один раз при создании и служит ключом хранения.
type Session struct {
	Token        string    `json:"token"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	Completed    bool      `json:"completed"`

	// Asked содержит вопросы, уже выданные кандидату. Ответ принимается
	// только на вопрос из этого множества.
	Asked map[string]bool `json:"asked_questions"`

	// QuestionOrder фиксирует порядок выдачи вопросов
	QuestionOrder []string `json:"question_order"`

	// Answers хранит по одному ответу на вопрос, перезапись запрещена
	Answers map[string]string `json:"answers"`

	// AnswerLog — журнал всех принятых ответов в порядке поступления
	AnswerLog []AnswerRecord `json:"answer_log"`

	// CurrentIndex — курсор позиции в банке вопросов
	CurrentIndex int `json:"current_question_index"`
}

// NewSession создает пустое состояние сессии для токена
func NewSession(token string) *Session {
	now := time.Now().UTC()
	return &Session{
		Token:         token,
		CreatedAt:     now,
		LastActivity:  now,
		Asked:         make(map[string]bool),
		QuestionOrder: make([]string, 0),
		Answers:       make(map[string]string),
		AnswerLog:     make([]AnswerRecord, 0),
	}
}

// Expired сообщает, истек ли срок действия сессии
func (s *Session) Expired(ttl time.Duration) bool {
	return time.Now().UTC().After(s.CreatedAt.Add(ttl))
}

// AskedIDs возвращает список выданных вопросов в порядке выдачи
func (s *Session) AskedIDs() []string {
	out := make([]string, len(s.QuestionOrder))
	copy(out, s.QuestionOrder)
	return out
}

// Clone возвращает глубокую копию состояния сессии
func (s *Session) Clone() *Session {
	copied := &Session{
		Token:         s.Token,
		CreatedAt:     s.CreatedAt,
		LastActivity:  s.LastActivity,
		Completed:     s.Completed,
		Asked:         make(map[string]bool, len(s.Asked)),
		QuestionOrder: make([]string, len(s.QuestionOrder)),
		Answers:       make(map[string]string, len(s.Answers)),
		AnswerLog:     make([]AnswerRecord, len(s.AnswerLog)),
		CurrentIndex:  s.CurrentIndex,
	}
	for id := range s.Asked {
		copied.Asked[id] = true
	}
	copy(copied.QuestionOrder, s.QuestionOrder)
	for id, answer := range s.Answers {
		copied.Answers[id] = answer
	}
	copy(copied.AnswerLog, s.AnswerLog)
	return copied
}
