package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"hr-interview-backend/internal/session"
)

// SQLiteStore — долговременное хранилище сессий. Каждая сессия занимает
// одну строку, составные поля сериализуются в JSON-колонки и
// восстанавливаются без потерь.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore открывает базу по указанному пути и создает схему
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ошибка создания таблиц: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		answers TEXT NOT NULL,
		answer_log TEXT NOT NULL,
		asked_questions TEXT NOT NULL,
		question_order TEXT NOT NULL,
		current_question_index INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		last_activity DATETIME NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT 0
	);
	`
	_, err := db.Exec(schema)
	return err
}

func (s *SQLiteStore) Save(sess *session.Session) error {
	answers, err := json.Marshal(sess.Answers)
	if err != nil {
		return fmt.Errorf("ошибка сериализации ответов: %w", err)
	}
	answerLog, err := json.Marshal(sess.AnswerLog)
	if err != nil {
		return fmt.Errorf("ошибка сериализации журнала ответов: %w", err)
	}
	asked, err := json.Marshal(sess.AskedIDs())
	if err != nil {
		return fmt.Errorf("ошибка сериализации заданных вопросов: %w", err)
	}
	order, err := json.Marshal(sess.QuestionOrder)
	if err != nil {
		return fmt.Errorf("ошибка сериализации порядка вопросов: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO sessions (token, answers, answer_log, asked_questions, question_order,
			current_question_index, created_at, last_activity, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(token) DO UPDATE SET
			answers = excluded.answers,
			answer_log = excluded.answer_log,
			asked_questions = excluded.asked_questions,
			question_order = excluded.question_order,
			current_question_index = excluded.current_question_index,
			last_activity = excluded.last_activity,
			completed = excluded.completed`,
		sess.Token, string(answers), string(answerLog), string(asked), string(order),
		sess.CurrentIndex, sess.CreatedAt, sess.LastActivity, sess.Completed,
	)
	if err != nil {
		return fmt.Errorf("ошибка записи сессии: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(token string) (*session.Session, error) {
	row := s.db.QueryRow(
		`SELECT token, answers, answer_log, asked_questions, question_order,
			current_question_index, created_at, last_activity, completed
		 FROM sessions WHERE token = ?`,
		token,
	)

	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *SQLiteStore) Delete(token string) error {
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("ошибка удаления сессии: %w", err)
	}
	return nil
}

func (s *SQLiteStore) All() []*session.Session {
	rows, err := s.db.Query(
		`SELECT token, answers, answer_log, asked_questions, question_order,
			current_question_index, created_at, last_activity, completed
		 FROM sessions`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []*session.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			continue
		}
		out = append(out, sess)
	}
	return out
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*session.Session, error) {
	var (
		sess      session.Session
		answers   string
		answerLog string
		asked     string
		order     string
	)

	err := row.Scan(&sess.Token, &answers, &answerLog, &asked, &order,
		&sess.CurrentIndex, &sess.CreatedAt, &sess.LastActivity, &sess.Completed)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(answers), &sess.Answers); err != nil {
		return nil, fmt.Errorf("ошибка десериализации ответов: %w", err)
	}
	if err := json.Unmarshal([]byte(answerLog), &sess.AnswerLog); err != nil {
		return nil, fmt.Errorf("ошибка десериализации журнала ответов: %w", err)
	}
	var askedList []string
	if err := json.Unmarshal([]byte(asked), &askedList); err != nil {
		return nil, fmt.Errorf("ошибка десериализации заданных вопросов: %w", err)
	}
	sess.Asked = make(map[string]bool, len(askedList))
	for _, id := range askedList {
		sess.Asked[id] = true
	}
	if err := json.Unmarshal([]byte(order), &sess.QuestionOrder); err != nil {
		return nil, fmt.Errorf("ошибка десериализации порядка вопросов: %w", err)
	}
	if sess.Answers == nil {
		sess.Answers = make(map[string]string)
	}
	if sess.AnswerLog == nil {
		sess.AnswerLog = make([]session.AnswerRecord, 0)
	}
	if sess.QuestionOrder == nil {
		sess.QuestionOrder = make([]string, 0)
	}

	return &sess, nil
}
