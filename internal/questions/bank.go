package questions

import "fmt"

// Category определяет тип вопроса интервью
type Category string

const (
	CategoryTechnical Category = "technical"
	CategorySoft      Category = "soft"
)

// Question представляет один вопрос интервью
type Question struct {
	ID       string   `json:"id" yaml:"id"`
	Text     string   `json:"text" yaml:"text"`
	Category Category `json:"type" yaml:"type"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Bank представляет пул вопросов интервью в фиксированном порядке
type Bank struct {
	questions []Question
	byID      map[string]Question
}

// NewBank создает банк вопросов с валидацией
func NewBank(qs []Question) (*Bank, error) {
	if len(qs) == 0 {
		return nil, fmt.Errorf("банк вопросов не может быть пустым")
	}

	byID := make(map[string]Question, len(qs))
	for i, q := range qs {
		if q.ID == "" {
			return nil, fmt.Errorf("вопрос %d должен иметь id", i+1)
		}
		if q.Text == "" {
			return nil, fmt.Errorf("вопрос %s должен иметь text", q.ID)
		}
		if q.Category != CategoryTechnical && q.Category != CategorySoft {
			return nil, fmt.Errorf("вопрос %s имеет неизвестный тип: %s", q.ID, q.Category)
		}
		if len(q.Keywords) == 0 {
			return nil, fmt.Errorf("вопрос %s должен иметь хотя бы одно ключевое слово", q.ID)
		}
		if _, exists := byID[q.ID]; exists {
			return nil, fmt.Errorf("дублирующийся id вопроса: %s", q.ID)
		}
		byID[q.ID] = q
	}

	return &Bank{questions: qs, byID: byID}, nil
}

// At возвращает вопрос по позиции в банке
func (b *Bank) At(index int) (Question, bool) {
	if index < 0 || index >= len(b.questions) {
		return Question{}, false
	}
	return b.questions[index], true
}

// Find возвращает вопрос по его идентификатору
func (b *Bank) Find(id string) (Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// Size возвращает количество вопросов в банке
func (b *Bank) Size() int {
	return len(b.questions)
}

// All возвращает копию списка вопросов в порядке выдачи
func (b *Bank) All() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Fallback возвращает резервный вопрос на случай недоступности генератора
func Fallback(position int) Question {
	return Question{
		ID:       fmt.Sprintf("fallback_q_%d", position),
		Text:     "Расскажите о своем опыте работы в команде.",
		Category: CategorySoft,
		Keywords: []string{"опыт", "команда", "работа"},
	}
}
