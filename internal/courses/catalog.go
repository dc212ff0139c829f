package courses

import (
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/sonar-libras/sonar/pkg/models"
)

// Course levels
const (
	LevelBasic        = "basico"
	LevelIntermediate = "intermediario"
	LevelAdvanced     = "avancado"
)

// DefaultModuleCount is the module count assumed for enrollments that
// predate module tracking and belong to no known course
const DefaultModuleCount = 8

var moduleTemplates = []string{
	"Introdução e Fundamentos",
	"Alfabeto e Números",
	"Cumprimentos e Apresentações",
	"Família e Relacionamentos",
	"Trabalho e Profissões",
	"Tempo e Calendário",
	"Cores e Objetos",
	"Sentimentos e Emoções",
	"Comida e Bebida",
	"Casa e Móveis",
	"Transporte e Viagem",
	"Saúde e Corpo",
	"Educação e Escola",
	"Esportes e Lazer",
	"Natureza e Animais",
	"Tecnologia e Comunicação",
}

// GenerateModules builds n numbered modules for a course without an explicit
// lesson list
func GenerateModules(courseID string, n int) []models.Module {
	modules := make([]models.Module, 0, n)
	for i := 1; i <= n; i++ {
		topic := fmt.Sprintf("Conteúdo %d", i)
		if i <= len(moduleTemplates) {
			topic = moduleTemplates[i-1]
		}
		modules = append(modules, models.Module{
			ID:    fmt.Sprintf("%s-module-%d", courseID, i),
			Title: fmt.Sprintf("Módulo %d: %s", i, topic),
		})
	}
	return modules
}

// Catalog returns the built-in courses
func Catalog() []models.Course {
	return []models.Course{
		{
			ID:          "alfabeto-basico",
			Title:       "Libras Básico - Primeiros Passos",
			Description: "Aprenda os fundamentos da Língua Brasileira de Sinais. Alfabeto, números e cumprimentos básicos.",
			Level:       LevelBasic,
			Duration:    "4 semanas",
			Instructor:  "Prof. Ana Silva",
			Modules: []models.Module{
				{ID: "mod1", Title: "Introdução ao Alfabeto em Libras", Duration: "8 min"},
				{ID: "mod2", Title: "Letras A-H", Duration: "12 min"},
				{ID: "mod3", Title: "Letras I-P", Duration: "12 min"},
				{ID: "mod4", Title: "Letras Q-Z", Duration: "13 min"},
			},
		},
		{
			ID:          "numeros-quantidades",
			Title:       "Libras no Ambiente de Trabalho",
			Description: "Vocabulário específico para o mercado de trabalho e comunicação profissional em Libras.",
			Level:       LevelIntermediate,
			Duration:    "6 semanas",
			Instructor:  "Prof. Carlos Santos",
			Modules: []models.Module{
				{ID: "mod1", Title: "Números de 1 a 10", Duration: "10 min"},
				{ID: "mod2", Title: "Números de 11 a 50", Duration: "10 min"},
				{ID: "mod3", Title: "Números de 51 a 100", Duration: "10 min"},
			},
		},
		{
			ID:          "3",
			Title:       "Interpretação Avançada em Libras",
			Description: "Técnicas avançadas de interpretação e tradução simultânea em Libras.",
			Level:       LevelAdvanced,
			Duration:    "8 semanas",
			Instructor:  "Prof. Maria Oliveira",
			Modules:     GenerateModules("3", 16),
		},
		{
			ID:          "4",
			Title:       "Libras para Crianças",
			Description: "Metodologia lúdica para ensinar Libras para crianças surdas e ouvintes.",
			Level:       LevelIntermediate,
			Duration:    "5 semanas",
			Instructor:  "Prof. João Pedro",
			Modules:     GenerateModules("4", 10),
		},
		{
			ID:          "5",
			Title:       "Gramática Avançada de Libras",
			Description: "Estruturas gramaticais complexas e aspectos linguísticos avançados da Libras.",
			Level:       LevelAdvanced,
			Duration:    "10 semanas",
			Instructor:  "Prof. Fernanda Costa",
			Modules:     GenerateModules("5", 20),
		},
		{
			ID:          "6",
			Title:       "Libras Conversacional",
			Description: "Desenvolva fluência em conversas cotidianas e expressões idiomáticas em Libras.",
			Level:       LevelBasic,
			Duration:    "6 semanas",
			Instructor:  "Prof. Roberto Lima",
			Modules:     GenerateModules("6", 12),
		},
	}
}

// FindCourse looks a course up in the catalog
func FindCourse(id string) (models.Course, bool) {
	return slice.Find(Catalog(), func(c models.Course) bool { return c.ID == id })
}
