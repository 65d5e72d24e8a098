package analyzer

import "strings"

// Report содержит оценку качества ответа и промежуточные метрики
type Report struct {
	Score          int     `json:"score"`
	WordCount      int     `json:"word_count"`
	SentenceCount  int     `json:"sentence_count"`
	KeywordMatches int     `json:"keyword_matches"`
	KeywordRatio   float64 `json:"keyword_ratio"`
	HasExamples    bool    `json:"has_examples"`
	HasSpecifics   bool    `json:"has_specifics"`
	Details        string  `json:"details,omitempty"`
}

// Маркеры примеров и конкретики. Исходный пул вопросов русскоязычный,
// английские эквиваленты добавлены для двуязычных кандидатов.
var exampleMarkers = []string{
	"например", "пример", "случай", "ситуация",
	"for example", "instance", "case", "situation",
}

var specificityMarkers = []string{
	"конкретно", "именно", "определенно",
	"specifically", "exactly", "precisely",
}

// Analyze оценивает качество ответа по шкале 0-100 на основе длины,
// релевантности ключевым словам и структуры текста. Функция детерминирована
// и не делает внешних вызовов.
func Analyze(answer string, keywords []string) Report {
	if answer == "" {
		return Report{Score: 0, Details: "Пустой ответ"}
	}

	answerLower := strings.ToLower(answer)

	wordCount := len(strings.Fields(answer))
	sentenceCount := countSentences(answer)

	keywordMatches := 0
	keywordRatio := 0.0
	if len(keywords) > 0 {
		for _, keyword := range keywords {
			if strings.Contains(answerLower, strings.ToLower(keyword)) {
				keywordMatches++
			}
		}
		keywordRatio = float64(keywordMatches) / float64(len(keywords))
	}

	hasExamples := containsAny(answerLower, exampleMarkers)
	hasSpecifics := containsAny(answerLower, specificityMarkers)

	score := 0.0

	// Базовая оценка по длине
	switch {
	case wordCount >= 50:
		score += 30
	case wordCount >= 20:
		score += 20
	case wordCount >= 10:
		score += 10
	}

	// Бонус за релевантность; без ключевых слов длина служит заменой релевантности
	if len(keywords) > 0 {
		score += min30(keywordRatio * 100)
	} else {
		score += min30(float64(wordCount) / 100 * 100)
	}

	// Бонус за примеры и конкретику
	if hasExamples {
		score += 15
	}
	if hasSpecifics {
		score += 10
	}

	// Бонус за структурированность
	if sentenceCount >= 3 {
		score += 10
	} else if sentenceCount >= 2 {
		score += 5
	}

	// Штраф за слишком краткие ответы
	if wordCount < 5 && score > 10 {
		score = 10
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return Report{
		Score:          int(score),
		WordCount:      wordCount,
		SentenceCount:  sentenceCount,
		KeywordMatches: keywordMatches,
		KeywordRatio:   keywordRatio,
		HasExamples:    hasExamples,
		HasSpecifics:   hasSpecifics,
	}
}

func countSentences(answer string) int {
	count := 0
	for _, segment := range strings.Split(answer, ".") {
		if strings.TrimSpace(segment) != "" {
			count++
		}
	}
	return count
}

func containsAny(haystack string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(haystack, marker) {
			return true
		}
	}
	return false
}

func min30(v float64) float64 {
	if v > 30 {
		return 30
	}
	return v
}
