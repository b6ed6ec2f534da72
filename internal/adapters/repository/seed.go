package repository

import (
	"time"

	"github.com/okian/nora/internal/domain/model"
)

// DemoCatalog returns the catalog a fresh instance starts with when seeding
// is enabled. Ids are "1" to "4" and every project is stamped with at.
func DemoCatalog(at time.Time) []model.Project {
	return []model.Project{
		{
			ID:           "1",
			Title:        "Pesquisa em Doenças Cardiovasculares",
			Description:  "Estudo sobre fatores de risco de doenças cardíacas em populações urbanas",
			Requirements: "7º semestre ou superior",
			ProfessorRef: model.NewActorID(model.RoleProfessor, "Prof. João Silva"),
			Institution:  "USP - Cardiologia",
			Visibility:   model.InstitutionOnly,
			CreatedAt:    at,
		},
		{
			ID:           "2",
			Title:        "Neurociência e Neuroplasticidade",
			Description:  "Pesquisa sobre plasticidade cerebral e funções cognitivas",
			Requirements: "6º semestre ou superior",
			ProfessorRef: model.NewActorID(model.RoleProfessor, "Prof. Maria Santos"),
			Institution:  "UNICAMP - Neurologia",
			Visibility:   model.AllInstitutions,
			CreatedAt:    at,
		},
		{
			ID:           "3",
			Title:        "Resultados de Saúde Pediátrica",
			Description:  "Análise de resultados de tratamentos em cuidados pediátricos",
			Requirements: "8º semestre ou superior",
			ProfessorRef: model.NewActorID(model.RoleProfessor, "Prof. Carlos Lima"),
			Institution:  "UFRJ - Pediatria",
			Visibility:   model.AllInstitutions,
			CreatedAt:    at,
		},
		{
			ID:           "4",
			Title:        "Estudos Avançados em Bioquímica",
			Description:  "Pesquisa sobre interações moleculares em processos celulares",
			Requirements: "5º semestre ou superior",
			ProfessorRef: model.NewActorID(model.RoleProfessor, "Prof. Ana Costa"),
			Institution:  "USP - Cardiologia",
			Visibility:   model.InstitutionOnly,
			CreatedAt:    at,
		},
	}
}
