package config

import "hr-interview-backend/internal/questions"

// BankFile представляет YAML-файл с пулом вопросов интервью
type BankFile struct {
	Questions []questions.Question `yaml:"questions"`
}
