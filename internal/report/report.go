// Package report превращает накопленные ответы сессии в итоговый балл,
// глиф (категориальную метку с описанием) и текстовую сводку для рекрутера.
package report

import (
	"fmt"
	"strings"
	"time"

	"hr-interview-backend/internal/analyzer"
	"hr-interview-backend/internal/questions"
)

// Glyph представляет метку уровня кандидата и сопровождающее описание
type Glyph struct {
	Glyph   string `json:"glyph"`
	Profile string `json:"profile"`
}

// PerformanceScore вычисляет итоговый балл 0-100 по качеству ответов.
// Средний балл качества дополняется бонусом за полноту интервью.
func PerformanceScore(answers map[string]string, bank *questions.Bank) int {
	if len(answers) == 0 {
		return 0
	}

	totalScore := 0
	answered := 0
	for questionID, answer := range answers {
		question, ok := bank.Find(questionID)
		if !ok {
			continue
		}
		quality := analyzer.Analyze(answer, question.Keywords)
		totalScore += quality.Score
		answered++
	}

	if answered == 0 {
		return 0
	}

	avgQuality := float64(totalScore) / float64(answered)
	completionBonus := float64(answered) / float64(bank.Size()) * 20

	final := avgQuality + completionBonus
	if final > 100 {
		final = 100
	}
	if final < 0 {
		final = 0
	}
	return int(final)
}

// averageQuality возвращает средний балл качества и количество учтенных ответов
func averageQuality(answers map[string]string, bank *questions.Bank) (float64, []analyzer.Report) {
	reports := make([]analyzer.Report, 0, len(answers))
	total := 0
	for questionID, answer := range answers {
		question, ok := bank.Find(questionID)
		if !ok {
			continue
		}
		quality := analyzer.Analyze(answer, question.Keywords)
		reports = append(reports, quality)
		total += quality.Score
	}
	if len(reports) == 0 {
		return 0, reports
	}
	return float64(total) / float64(len(reports)), reports
}

// categoryCounts считает, сколько отвеченных вопросов были техническими
func categoryCounts(answers map[string]string, bank *questions.Bank) (technical, soft int) {
	for questionID := range answers {
		question, ok := bank.Find(questionID)
		if ok && question.Category == questions.CategoryTechnical {
			technical++
		}
	}
	soft = len(answers) - technical
	return technical, soft
}

// BuildGlyph классифицирует кандидата по среднему качеству ответов.
// Границы уровней 80/65/50 — контракт, формулировки — оформление.
func BuildGlyph(answers map[string]string, bank *questions.Bank) Glyph {
	if len(answers) == 0 {
		return Glyph{
			Glyph:   "🚀 Стартер-Потенциал",
			Profile: "Кандидат только начинает интервью. Пока недостаточно данных для полного анализа.",
		}
	}

	avgQuality, _ := averageQuality(answers, bank)
	completionRate := float64(len(answers)) / float64(bank.Size()) * 100
	technical, soft := categoryCounts(answers, bank)

	var glyph, profile string
	switch {
	case avgQuality >= 80:
		glyph = "🎯 Мастер-Лидер"
		profile = fmt.Sprintf("Исключительный кандидат с выдающимися навыками. Средний качественный балл: %.1f/100. Демонстрирует глубокое понимание вопросов, структурированное мышление и высокий уровень профессиональной зрелости. Готов к лидерским позициям и сложным задачам.", avgQuality)
	case avgQuality >= 65:
		glyph = "⚡ Эксперт-Драйвер"
		profile = fmt.Sprintf("Сильный кандидат с хорошими профессиональными навыками. Средний качественный балл: %.1f/100. Показывает способность к аналитическому мышлению, может эффективно решать сложные задачи и работать в команде.", avgQuality)
	case avgQuality >= 50:
		glyph = "🌟 Потенциал-Рост"
		profile = fmt.Sprintf("Перспективный кандидат с хорошим потенциалом. Средний качественный балл: %.1f/100. Демонстрирует базовые профессиональные навыки и мотивацию к развитию. Подходит для позиций с возможностью роста.", avgQuality)
	default:
		glyph = "🚀 Стартер-Энтузиаст"
		profile = fmt.Sprintf("Кандидат на начальном этапе развития. Средний качественный балл: %.1f/100. Показывает энтузиазм и готовность к обучению. Рекомендуется для junior позиций с менторской поддержкой.", avgQuality)
	}

	profile += "\n\n📊 Детали анализа:\n"
	profile += fmt.Sprintf("• Завершенность: %.1f%% (%d/%d)\n", completionRate, len(answers), bank.Size())
	profile += fmt.Sprintf("• Технические вопросы: %d, Soft skills: %d\n", technical, soft)
	profile += fmt.Sprintf("• Среднее качество ответов: %.1f/100", avgQuality)

	return Glyph{Glyph: glyph, Profile: profile}
}

// BuildSummary формирует развернутую сводку интервью для рекрутера
func BuildSummary(answers map[string]string, bank *questions.Bank, createdAt time.Time) string {
	totalAnswers := len(answers)
	if totalAnswers == 0 {
		return "📊 **Анализ интервью начат**\n\nИнтервью только началось. Пожалуйста, ответьте на вопросы для получения детального анализа."
	}

	avgQuality, reports := averageQuality(answers, bank)
	performanceScore := PerformanceScore(answers, bank)
	totalMinutes := int(time.Since(createdAt).Minutes())

	withExamples := 0
	ratioSum := 0.0
	for _, r := range reports {
		if r.HasExamples {
			withExamples++
		}
		ratioSum += r.KeywordRatio
	}
	avgRelevance := 0.0
	if len(reports) > 0 {
		avgRelevance = ratioSum / float64(len(reports)) * 100
	}

	var qualityLevel, recommendation string
	switch {
	case avgQuality >= 80:
		qualityLevel = "🏆 Превосходное"
		recommendation = "Настоятельно рекомендуется к найму"
	case avgQuality >= 65:
		qualityLevel = "✅ Отличное"
		recommendation = "Рекомендуется к найму"
	case avgQuality >= 50:
		qualityLevel = "👍 Хорошее"
		recommendation = "Подходит для рассмотрения"
	default:
		qualityLevel = "⚠️ Базовое"
		recommendation = "Требует дополнительного интервью"
	}

	var b strings.Builder
	b.WriteString("📊 **Подробный анализ интервью**\n\n")
	b.WriteString("**Общая статистика:**\n")
	fmt.Fprintf(&b, "• Отвечено на %d из %d вопросов (%.1f%%)\n", totalAnswers, bank.Size(), float64(totalAnswers)/float64(bank.Size())*100)
	fmt.Fprintf(&b, "• Общее время интервью: %d минут\n", totalMinutes)
	fmt.Fprintf(&b, "• Итоговый балл: %d/100\n\n", performanceScore)

	b.WriteString("**Анализ качества ответов:**\n")
	fmt.Fprintf(&b, "• Уровень качества: %s\n", qualityLevel)
	fmt.Fprintf(&b, "• Средний балл качества: %.1f/100\n", avgQuality)
	fmt.Fprintf(&b, "• Ответы с примерами: %d/%d\n", withExamples, totalAnswers)
	fmt.Fprintf(&b, "• Релевантность содержания: %.1f%% (в среднем)\n\n", avgRelevance)

	b.WriteString("**Профессиональная оценка:**\n")
	b.WriteString(recommendation)
	b.WriteString("\n\n**Рекомендации для следующих этапов:**\n")
	if avgQuality >= 70 {
		b.WriteString("• Техническое интервью со сложными задачами\n")
	} else {
		b.WriteString("• Техническое интервью базового уровня\n")
	}
	if performanceScore >= 70 {
		b.WriteString("• Готов к самостоятельной работе\n")
	} else {
		b.WriteString("• Рекомендуется менторская поддержка\n")
	}
	if avgQuality >= 80 {
		b.WriteString("• Может претендовать на лидерские позиции\n")
	} else {
		b.WriteString("• Подходит для командных позиций\n")
	}

	strengths := make([]string, 0, 3)
	if avgQuality >= 70 {
		strengths = append(strengths, "• Высокое качество ответов и аналитическое мышление")
	}
	if withExamples*2 >= totalAnswers {
		strengths = append(strengths, "• Способность приводить конкретные примеры")
	}
	if totalMinutes <= 30 {
		strengths = append(strengths, "• Хорошая скорость реакции")
	}
	if len(strengths) > 0 {
		b.WriteString("\n**Сильные стороны:**\n")
		b.WriteString(strings.Join(strengths, "\n"))
	}

	return b.String()
}

// LegacyGlyph — упрощенная классификация для старых клиентов без токена.
// Оценивает только среднюю длину ответов, не путать с посессионным анализом.
func LegacyGlyph(answers []string) Glyph {
	if len(answers) == 0 {
		return Glyph{
			Glyph:   "🚀 Стартер-Энтузиаст",
			Profile: "Недостаточно данных для анализа",
		}
	}

	totalLength := 0
	for _, answer := range answers {
		totalLength += len([]rune(answer))
	}
	avgLength := float64(totalLength) / float64(len(answers))

	switch {
	case avgLength > 100:
		return Glyph{
			Glyph:   "🎯 Лидер-Аналитик",
			Profile: "Кандидат показал отличные аналитические способности и глубину мышления.",
		}
	case avgLength > 50:
		return Glyph{
			Glyph:   "⚡ Потенциал-Рост",
			Profile: "Кандидат демонстрирует хороший потенциал и коммуникативные навыки.",
		}
	default:
		return Glyph{
			Glyph:   "🚀 Стартер-Энтузиаст",
			Profile: "Кандидат показал базовые навыки и мотивацию к развитию.",
		}
	}
}
