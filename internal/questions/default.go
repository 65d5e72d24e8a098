package questions

// Default возвращает стандартный пул из десяти вопросов интервью.
// Порядок в списке определяет порядок выдачи кандидату.
func Default() *Bank {
	bank, err := NewBank(defaultQuestions())
	if err != nil {
		// Стандартный пул проверяется тестами, сюда попасть нельзя
		panic(err)
	}
	return bank
}

func defaultQuestions() []Question {
	return []Question{
		{
			ID:       "q_1",
			Text:     "Расскажите о себе и своем профессиональном опыте. Какие навыки и достижения вы считаете наиболее важными?",
			Category: CategoryTechnical,
			Keywords: []string{"навыки", "опыт", "достижения", "профессионал"},
		},
		{
			ID:       "q_2",
			Text:     "Опишите свой идеальный рабочий день. Что бы вы делали и как бы себя чувствовали?",
			Category: CategorySoft,
			Keywords: []string{"мотивация", "идеал", "комфорт", "рабочий день"},
		},
		{
			ID:       "q_3",
			Text:     "Расскажите о ситуации, когда вам пришлось решать сложную проблему. Как вы подошли к решению?",
			Category: CategoryTechnical,
			Keywords: []string{"проблема", "решение", "анализ", "подход"},
		},
		{
			ID:       "q_4",
			Text:     "Как вы справляетесь со стрессом и давлением на работе? Приведите конкретный пример.",
			Category: CategorySoft,
			Keywords: []string{"стресс", "давление", "пример", "справляться"},
		},
		{
			ID:       "q_5",
			Text:     "Расскажите о своем опыте работы в команде. Какую роль вы обычно играете в коллективе?",
			Category: CategorySoft,
			Keywords: []string{"команда", "роль", "коллектив", "сотрудничество"},
		},
		{
			ID:       "q_6",
			Text:     "Какие технологии, методы или навыки вы изучили за последний год? Что планируете изучить?",
			Category: CategoryTechnical,
			Keywords: []string{"технологии", "обучение", "планы", "развитие"},
		},
		{
			ID:       "q_7",
			Text:     "Опишите ситуацию, когда вам пришлось адаптироваться к серьезным изменениям. Как вы это делали?",
			Category: CategorySoft,
			Keywords: []string{"адаптация", "изменения", "гибкость", "приспособление"},
		},
		{
			ID:       "q_8",
			Text:     "Расскажите о своих карьерных целях. Где вы видите себя через 2-3 года?",
			Category: CategorySoft,
			Keywords: []string{"карьера", "цели", "планы", "будущее"},
		},
		{
			ID:       "q_9",
			Text:     "Что мотивирует вас в работе больше всего? Что дает вам энергию для профессионального роста?",
			Category: CategorySoft,
			Keywords: []string{"мотивация", "энергия", "рост", "драйв"},
		},
		{
			ID:       "q_10",
			Text:     "Почему вы заинтересованы в работе в нашей компании? Какой вклад вы хотите внести?",
			Category: CategorySoft,
			Keywords: []string{"интерес", "компания", "вклад", "ценность"},
		},
	}
}
