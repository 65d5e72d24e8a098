package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hr-interview-backend/internal/questions"
)

// LoadBank загружает пул вопросов из YAML файла
func LoadBank(filename string) (*questions.Bank, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", filename, err)
	}

	var file BankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("ошибка парсинга YAML: %w", err)
	}

	bank, err := questions.NewBank(file.Questions)
	if err != nil {
		return nil, fmt.Errorf("ошибка валидации пула вопросов: %w", err)
	}

	return bank, nil
}
