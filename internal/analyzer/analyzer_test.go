package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeEmptyAnswer(t *testing.T) {
	report := Analyze("", []string{"опыт"})

	assert.Equal(t, 0, report.Score)
	assert.Equal(t, "Пустой ответ", report.Details)
}

func TestAnalyzeOneWordAnswer(t *testing.T) {
	report := Analyze("Да", []string{"опыт", "команда"})

	assert.Equal(t, 0, report.Score)
	assert.Equal(t, 1, report.WordCount)
	assert.Equal(t, 0, report.KeywordMatches)
}

func TestAnalyzeShortAnswerCapped(t *testing.T) {
	// Четыре слова с полным попаданием в ключевые слова: релевантность
	// дает 30 баллов, но ответы короче пяти слов не могут набрать больше 10
	report := Analyze("Я работал много лет", []string{"работа"})

	assert.Equal(t, 4, report.WordCount)
	assert.Equal(t, 1, report.KeywordMatches)
	assert.Equal(t, 10, report.Score)
}

func TestAnalyzeMediumAnswer(t *testing.T) {
	// 20 слов без ключевых слов в тексте, без примеров и конкретики,
	// одно предложение: только базовые 20 баллов за длину
	answer := strings.TrimSpace(strings.Repeat("слово ", 20))
	report := Analyze(answer, []string{"опыт"})

	assert.Equal(t, 20, report.WordCount)
	assert.Equal(t, 20, report.Score)
	assert.Equal(t, 1, report.SentenceCount)
}

func TestAnalyzeWithoutKeywordsLengthFallback(t *testing.T) {
	// Без ключевых слов релевантность заменяется длиной ответа
	answer := strings.TrimSpace(strings.Repeat("слово ", 20))
	report := Analyze(answer, nil)

	assert.Equal(t, 40, report.Score) // 20 за длину + 20 за релевантность-замену
	assert.Equal(t, 0.0, report.KeywordRatio)
}

func TestAnalyzeRichAnswer(t *testing.T) {
	// 56 слов, попадание в одно ключевое слово из четырех, маркеры
	// примера и конкретики, три предложения:
	// 30 (длина) + 25 (релевантность) + 15 + 10 + 10 = 90
	answer := strings.Repeat("опыт ", 50) +
		"Например, конкретно. Второе предложение. Третье предложение."
	keywords := []string{"навыки", "опыт", "достижения", "профессионал"}

	report := Analyze(answer, keywords)

	assert.Equal(t, 56, report.WordCount)
	assert.Equal(t, 3, report.SentenceCount)
	assert.Equal(t, 1, report.KeywordMatches)
	assert.Equal(t, 0.25, report.KeywordRatio)
	assert.True(t, report.HasExamples)
	assert.True(t, report.HasSpecifics)
	assert.Equal(t, 90, report.Score)
}

func TestAnalyzeRelevanceCappedAt30(t *testing.T) {
	// Полное совпадение ключевых слов: ratio 1.0 дает не больше 30 баллов
	answer := strings.TrimSpace(strings.Repeat("опыт команда ", 10))
	report := Analyze(answer, []string{"опыт", "команда"})

	assert.Equal(t, 2, report.KeywordMatches)
	assert.Equal(t, 1.0, report.KeywordRatio)
	// 20 слов: 20 за длину + 30 за релевантность
	assert.Equal(t, 50, report.Score)
}

func TestAnalyzeEnglishMarkers(t *testing.T) {
	answer := "I solved this for example by splitting the work into smaller parts and testing each one separately"
	report := Analyze(answer, nil)

	assert.True(t, report.HasExamples)
	assert.False(t, report.HasSpecifics)
}

func TestAnalyzeScoreNeverExceeds100(t *testing.T) {
	answer := strings.Repeat("опыт команда работа навыки ", 20) +
		"Например, конкретно. Еще предложение. И еще одно предложение."
	report := Analyze(answer, []string{"опыт", "команда", "работа", "навыки"})

	assert.LessOrEqual(t, report.Score, 100)
	assert.GreaterOrEqual(t, report.Score, 0)
}

func TestCountSentences(t *testing.T) {
	assert.Equal(t, 1, countSentences("Одно предложение без точки"))
	assert.Equal(t, 2, countSentences("Первое. Второе."))
	assert.Equal(t, 3, countSentences("Раз. Два. Три"))
	assert.Equal(t, 0, countSentences("..."))
}
