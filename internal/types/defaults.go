package types

// DefaultCandidateProfile returns the built-in starter profile used when no
// saved profile exists or a stored document fails to parse.
func DefaultCandidateProfile() CandidateProfile {
	return CandidateProfile{
		PersonalInfo: PersonalInfo{
			Name:     "Иван Петров",
			Title:    "Senior Backend Developer",
			Email:    "ivan.petrov@example.com",
			Phone:    "+7 (900) 123-45-67",
			LinkedIn: "linkedin.com/in/ivanpetrov",
			GitHub:   "github.com/ivanpetrov",
			Location: "Москва, Россия",
			Keywords: "Go, PostgreSQL, Kubernetes",
		},
		Summary: "Backend-разработчик с 7-летним опытом проектирования и эксплуатации высоконагруженных сервисов.",
		Experience: []Experience{
			{
				Company:  "ООО «Технологии»",
				Location: "Москва",
				Title:    "Senior Backend Developer",
				Period:   "2020 — настоящее время",
				Responsibilities: []string{
					"Проектирование и разработка микросервисов на Go",
					"Оптимизация запросов PostgreSQL, снижение latency на 40%",
					"Менторинг младших разработчиков",
				},
				Technologies: []string{"Go", "PostgreSQL", "Kafka", "Kubernetes"},
			},
		},
		Skills: Skills{
			HardSkills: map[string][]HardSkill{
				"Языки программирования": {
					{Name: "Go", Level: "Эксперт"},
					{Name: "Python", Level: "Средний"},
				},
				"Базы данных": {
					{Name: "PostgreSQL", Level: "Продвинутый"},
					{Name: "Redis", Level: "Средний"},
				},
			},
			SoftSkills: []SoftSkill{
				{Name: "Коммуникация", Level: "Продвинутый"},
				{Name: "Наставничество", Level: "Продвинутый"},
			},
		},
		Projects: []Project{
			{
				Name:         "Сервис аналитики вакансий",
				Description:  "Пет-проект: агрегация и анализ вакансий с рекомендациями по навыкам.",
				Technologies: []string{"Go", "PostgreSQL", "Docker"},
				Link:         "github.com/ivanpetrov/vacancy-analytics",
			},
		},
		Education: Education{
			Degree:     "Бакалавр, Прикладная математика и информатика",
			University: "МГТУ им. Н.Э. Баумана",
			Period:     "2012 — 2016",
		},
		Philosophy: "Простые решения живут дольше сложных. Код пишется для людей, а не для машин.",
	}
}
