package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hr-interview-backend/internal/audit"
	"hr-interview-backend/internal/metrics"
	"hr-interview-backend/internal/questions"
	"hr-interview-backend/internal/report"
)

// Минимальная длина ответа в символах после обрезки пробелов
const minAnswerLength = 10

// Store — хранилище состояний сессий. Load возвращает (nil, nil),
// если сессия не найдена.
type Store interface {
	Load(token string) (*Session, error)
	Save(sess *Session) error
	Delete(token string) error
	All() []*Session
}

// Generator — внешний генератор вопросов. Может быть недоступен,
// в этом случае сервис использует детерминированный резервный вопрос.
type Generator interface {
	GenerateQuestion(ctx context.Context, technicalAsked, softAsked, totalAsked int) (questions.Question, error)
}

// Service реализует машину состояний сессии интервью: выдачу вопросов
// строго по порядку банка, прием ответов с защитой от дубликатов,
// завершение и подсчет итогового балла.
type Service struct {
	bank      *questions.Bank
	store     Store
	generator Generator
	metrics   *metrics.Metrics
	events    *audit.Log
	log       *zap.Logger
	ttl       time.Duration

	// Мьютекс на токен: операции над одной сессией сериализуются,
	// разные сессии не блокируют друг друга
	locks sync.Map
}

// NewService создает сервис сессий. generator может быть nil.
func NewService(bank *questions.Bank, store Store, generator Generator, m *metrics.Metrics, events *audit.Log, log *zap.Logger) *Service {
	if m == nil {
		m = metrics.NewMetrics()
	}
	if events == nil {
		events = audit.NewLog()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		bank:      bank,
		store:     store,
		generator: generator,
		metrics:   m,
		events:    events,
		log:       log,
		ttl:       DefaultTTL,
	}
}

// SetTTL переопределяет срок жизни сессий. Вызывается при сборке
// приложения до начала обслуживания запросов.
func (s *Service) SetTTL(ttl time.Duration) {
	if ttl > 0 {
		s.ttl = ttl
	}
}

// NextQuestion описывает результат запроса следующего вопроса
type NextQuestion struct {
	Question       questions.Question
	AIGenerated    bool
	Completed      bool
	TotalQuestions int
	Remaining      int
	QuestionsAsked int
}

// SubmitResult описывает результат принятого ответа
type SubmitResult struct {
	AnswersSaved   int
	TotalQuestions int
	Remaining      int
}

// Status — снимок прогресса сессии
type Status struct {
	Token              string    `json:"token"`
	CreatedAt          time.Time `json:"created_at"`
	Completed          bool      `json:"completed"`
	QuestionsAnswered  int       `json:"questions_answered"`
	TotalQuestions     int       `json:"total_questions"`
	QuestionsAsked     int       `json:"questions_asked"`
	CurrentPerformance int       `json:"current_performance"`
}

// Result — итоговые показатели по времени и полноте интервью
type Result struct {
	SessionID              string    `json:"session_id"`
	TotalTime              int       `json:"total_time"`
	QuestionsAnswered      int       `json:"questions_answered"`
	CompletionRate         float64   `json:"completion_rate"`
	AverageTimePerQuestion int       `json:"average_time_per_question"`
	PerformanceScore       int       `json:"performance_score"`
	CreatedAt              time.Time `json:"created_at"`
	CompletedAt            time.Time `json:"completed_at"`
}

func (s *Service) tokenLock(token string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(token, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// loadActive загружает сессию и проверяет ее срок действия
func (s *Service) loadActive(token string) (*Session, error) {
	sess, err := s.store.Load(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки сессии: %w", err)
	}
	if sess == nil {
		return nil, ErrNotFound
	}
	if sess.Expired(s.ttl) {
		return nil, ErrExpired
	}
	return sess, nil
}

// save сохраняет сессию. Отказ хранилища логируется и не откатывает
// состояние в памяти: последняя известная копия продолжает обслуживаться.
func (s *Service) save(sess *Session) {
	if err := s.store.Save(sess); err != nil {
		s.log.Warn("не удалось сохранить сессию",
			zap.String("token", sess.Token),
			zap.Error(err))
	}
}

// Create создает новую сессию с уникальным токеном
func (s *Service) Create(_ context.Context) (*Session, error) {
	token := uuid.NewString()
	sess := NewSession(token)

	if err := s.store.Save(sess); err != nil {
		return nil, fmt.Errorf("ошибка сохранения новой сессии: %w", err)
	}

	s.metrics.IncrementSessionsStarted()
	s.events.Record("create_session", map[string]any{"token": token})
	s.log.Info("создана сессия", zap.String("token", token))

	return sess, nil
}

// NextQuestion выдает следующий вопрос строго по порядку банка.
// Количество уже заданных вопросов и есть индекс следующего.
// После исчерпания банка возвращается терминальный признак завершения.
func (s *Service) NextQuestion(ctx context.Context, token string) (*NextQuestion, error) {
	lock := s.tokenLock(token)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.loadActive(token)
	if err != nil {
		return nil, err
	}

	sess.LastActivity = time.Now().UTC()

	if len(sess.Asked) >= s.bank.Size() {
		s.events.Record("max_questions_reached", map[string]any{
			"token":       token,
			"total_asked": len(sess.Asked),
		})
		return &NextQuestion{
			Completed:      true,
			TotalQuestions: s.bank.Size(),
			Remaining:      0,
			QuestionsAsked: len(sess.Asked),
		}, nil
	}

	if sess.Completed {
		return nil, ErrAlreadyCompleted
	}

	question, aiGenerated, err := s.pickQuestion(ctx, sess)
	if err != nil {
		return nil, err
	}

	sess.Asked[question.ID] = true
	sess.QuestionOrder = append(sess.QuestionOrder, question.ID)
	sess.CurrentIndex = len(sess.QuestionOrder)
	s.save(sess)

	s.metrics.IncrementQuestionsIssued()
	s.events.Record("question_issued", map[string]any{
		"token":           token,
		"question_id":     question.ID,
		"questions_asked": len(sess.Asked),
		"ai_generated":    aiGenerated,
	})

	return &NextQuestion{
		Question:       question,
		AIGenerated:    aiGenerated,
		TotalQuestions: s.bank.Size(),
		Remaining:      s.bank.Size() - len(sess.Asked),
		QuestionsAsked: len(sess.Asked),
	}, nil
}

// pickQuestion выбирает вопрос из банка по курсору. Если курсор вышел за
// пределы банка (рассинхронизация состояния), вопрос запрашивается у
// генератора; при его отказе выдается фиксированный резервный вопрос.
func (s *Service) pickQuestion(ctx context.Context, sess *Session) (questions.Question, bool, error) {
	index := len(sess.Asked)
	if question, ok := s.bank.At(index); ok {
		return question, false, nil
	}

	if s.generator == nil {
		s.events.Record("bank_exhausted", map[string]any{"token": sess.Token})
		return questions.Question{}, false, ErrBankExhausted
	}

	technical := 0
	for id := range sess.Asked {
		if q, ok := s.bank.Find(id); ok && q.Category == questions.CategoryTechnical {
			technical++
		}
	}
	soft := len(sess.Asked) - technical

	question, err := s.generator.GenerateQuestion(ctx, technical, soft, len(sess.Asked))
	if err != nil {
		s.log.Warn("генератор вопросов недоступен, используется резервный вопрос",
			zap.String("token", sess.Token),
			zap.Error(err))
		return questions.Fallback(len(sess.Asked) + 1), true, nil
	}
	return question, true, nil
}

// SubmitAnswer принимает ответ на ранее выданный вопрос.
// Ответ на каждый вопрос принимается ровно один раз.
func (s *Service) SubmitAnswer(_ context.Context, token, questionID, answer string) (*SubmitResult, error) {
	lock := s.tokenLock(token)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.loadActive(token)
	if err != nil {
		return nil, err
	}
	if sess.Completed {
		return nil, ErrAlreadyCompleted
	}

	sess.LastActivity = time.Now().UTC()

	if !sess.Asked[questionID] {
		s.events.Record("invalid_answer", map[string]any{
			"token":       token,
			"question_id": questionID,
			"error":       "question not asked",
		})
		return nil, ErrQuestionNotIssued
	}

	if _, exists := sess.Answers[questionID]; exists {
		s.events.Record("duplicate_answer_prevented", map[string]any{
			"token":       token,
			"question_id": questionID,
		})
		return nil, ErrDuplicateAnswer
	}

	if answer == "" {
		return nil, ErrInvalidAnswer
	}
	if utf8.RuneCountInString(strings.TrimSpace(answer)) < minAnswerLength {
		return nil, ErrAnswerTooShort
	}

	sess.Answers[questionID] = answer
	sess.AnswerLog = append(sess.AnswerLog, AnswerRecord{QuestionID: questionID, Answer: answer})
	s.save(sess)

	s.metrics.IncrementAnswersSaved()
	s.events.Record("save_answer", map[string]any{
		"token":         token,
		"question_id":   questionID,
		"answer_length": utf8.RuneCountInString(answer),
		"answers_count": len(sess.Answers),
	})

	return &SubmitResult{
		AnswersSaved:   len(sess.Answers),
		TotalQuestions: s.bank.Size(),
		Remaining:      s.bank.Size() - len(sess.Answers),
	}, nil
}

// Complete помечает сессию завершенной. Повторный вызов не ошибка,
// но снять флаг завершения нельзя.
func (s *Service) Complete(_ context.Context, token string) error {
	lock := s.tokenLock(token)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.loadActive(token)
	if err != nil {
		return err
	}

	alreadyCompleted := sess.Completed
	sess.Completed = true
	sess.LastActivity = time.Now().UTC()
	s.save(sess)

	if !alreadyCompleted {
		s.metrics.IncrementSessionsCompleted()
	}
	s.events.Record("complete_session", map[string]any{"token": token})

	return nil
}

// Status возвращает текущий прогресс сессии с оценкой на лету
func (s *Service) Status(_ context.Context, token string) (*Status, error) {
	lock := s.tokenLock(token)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.loadActive(token)
	if err != nil {
		return nil, err
	}

	return &Status{
		Token:              sess.Token,
		CreatedAt:          sess.CreatedAt,
		Completed:          sess.Completed,
		QuestionsAnswered:  len(sess.Answers),
		TotalQuestions:     s.bank.Size(),
		QuestionsAsked:     len(sess.Asked),
		CurrentPerformance: report.PerformanceScore(sess.Answers, s.bank),
	}, nil
}

// Snapshot возвращает копию действующей сессии для построения отчетов
func (s *Service) Snapshot(_ context.Context, token string) (*Session, error) {
	lock := s.tokenLock(token)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.loadActive(token)
	if err != nil {
		return nil, err
	}
	return sess.Clone(), nil
}

// Result возвращает итоговые показатели. Доступен и для истекших сессий:
// рекрутер читает результат после окончания интервью.
func (s *Service) Result(_ context.Context, token string) (*Result, error) {
	lock := s.tokenLock(token)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.store.Load(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки сессии: %w", err)
	}
	if sess == nil {
		return nil, ErrNotFound
	}

	now := time.Now().UTC()
	totalTime := int(now.Sub(sess.CreatedAt).Seconds())
	answered := len(sess.Answers)

	completionRate := 0.0
	avgTime := 0
	if s.bank.Size() > 0 {
		completionRate = float64(answered) / float64(s.bank.Size()) * 100
	}
	if answered > 0 {
		avgTime = totalTime / answered
	}

	performance := 60 + answered*3
	if performance > 85 {
		performance = 85
	}
	if performance < 40 {
		performance = 40
	}

	return &Result{
		SessionID:              token,
		TotalTime:              totalTime,
		QuestionsAnswered:      answered,
		CompletionRate:         completionRate,
		AverageTimePerQuestion: avgTime,
		PerformanceScore:       performance,
		CreatedAt:              sess.CreatedAt,
		CompletedAt:            now,
	}, nil
}

// Sessions возвращает снимки всех известных сессий для админки
func (s *Service) Sessions(_ context.Context) []*Session {
	return s.store.All()
}

// Delete удаляет сессию. Административная операция.
func (s *Service) Delete(_ context.Context, token string) error {
	lock := s.tokenLock(token)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.Delete(token); err != nil {
		return fmt.Errorf("ошибка удаления сессии: %w", err)
	}
	s.events.Record("delete_session", map[string]any{"token": token})
	return nil
}

// Bank возвращает банк вопросов, которым пользуется сервис
func (s *Service) Bank() *questions.Bank {
	return s.bank
}
