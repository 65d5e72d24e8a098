package session

import "errors"

// Ошибки операций над сессией. HTTP-слой транслирует их в коды ответа,
// тексты показываются кандидату как есть.
var (
	ErrNotFound          = errors.New("сессия не найдена")
	ErrExpired           = errors.New("срок действия токена истёк")
	ErrAlreadyCompleted  = errors.New("тест уже завершён")
	ErrQuestionNotIssued = errors.New("вопрос не был задан")
	ErrDuplicateAnswer   = errors.New("на этот вопрос уже был дан ответ")
	ErrInvalidAnswer     = errors.New("некорректный формат ответа")
	ErrAnswerTooShort    = errors.New("ответ слишком короткий")
	ErrBankExhausted     = errors.New("банк вопросов исчерпан, генератор недоступен")
)
