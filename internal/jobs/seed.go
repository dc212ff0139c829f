package jobs

import (
	"time"

	"github.com/sonar-libras/sonar/pkg/models"
)

// Seeds returns the built-in postings that are always listed. A new slice is
// returned on every call.
func Seeds() []models.JobPosting {
	return []models.JobPosting{
		seed("1", "tech1", "2025-01-10", models.JobFields{
			Title:     "Desenvolvedor Front-end",
			Company:   "TechLibras",
			Location:  "São Paulo, SP",
			Type:      models.EmploymentCLT,
			Mode:      models.ModeHybrid,
			Salary:    "R$ 5.000 - R$ 8.000",
			Summary:   "Buscamos desenvolvedor front-end com experiência em React e TypeScript. Empresa inclusiva com intérpretes de Libras disponíveis.",
			Tags:      []string{"React", "TypeScript", "JavaScript", "CSS", "Libras"},
			Highlight: true,
		}),
		seed("2", "design1", "2025-01-09", models.JobFields{
			Title:    "Designer UX/UI",
			Company:  "InclusiveDesign",
			Location: "Rio de Janeiro, RJ",
			Type:     models.EmploymentPJ,
			Mode:     models.ModeRemote,
			Salary:   "R$ 4.000 - R$ 6.500",
			Summary:  "Procuramos designer especializado em acessibilidade e experiência do usuário. Conhecimento em design inclusivo é um diferencial.",
			Tags:     []string{"Figma", "Adobe XD", "UX", "UI", "Acessibilidade"},
		}),
		seed("3", "data1", "2025-01-08", models.JobFields{
			Title:    "Analista de Dados",
			Company:  "DataSurdo",
			Location: "Brasília, DF",
			Type:     models.EmploymentCLT,
			Mode:     models.ModeOnSite,
			Salary:   "R$ 6.000 - R$ 9.000",
			Summary:  "Vaga para analista de dados com foco em análise estatística. Ambiente de trabalho 100% acessível com comunicação em Libras.",
			Tags:     []string{"Python", "SQL", "Power BI", "Excel", "Estatística"},
		}),
		seed("4", "mobile1", "2025-01-07", models.JobFields{
			Title:     "Desenvolvedor Mobile",
			Company:   "AppInclusivo",
			Location:  "Belo Horizonte, MG",
			Type:      models.EmploymentCLT,
			Mode:      models.ModeHybrid,
			Salary:    "R$ 5.500 - R$ 8.500",
			Summary:   "Desenvolvedor mobile para criar aplicativos acessíveis. Experiência com React Native e conhecimento em acessibilidade mobile.",
			Tags:      []string{"React Native", "Flutter", "iOS", "Android", "Acessibilidade"},
			Highlight: true,
		}),
		seed("5", "edu1", "2025-01-06", models.JobFields{
			Title:    "Intérprete de Libras",
			Company:  "EduLibras",
			Location: "Porto Alegre, RS",
			Type:     models.EmploymentCLT,
			Mode:     models.ModeOnSite,
			Salary:   "R$ 3.500 - R$ 5.000",
			Summary:  "Intérprete de Libras para atuar em ambiente corporativo de tecnologia. Certificação PROLIBRAS obrigatória.",
			Tags:     []string{"Libras", "Interpretação", "PROLIBRAS", "Educação", "Comunicação"},
		}),
		seed("6", "support1", "2025-01-05", models.JobFields{
			Title:    "Suporte Técnico",
			Company:  "TechSupport+",
			Location: "Recife, PE",
			Type:     models.EmploymentCLT,
			Mode:     models.ModeRemote,
			Salary:   "R$ 2.800 - R$ 4.200",
			Summary:  "Suporte técnico especializado em atendimento à comunidade surda. Fluência em Libras e conhecimento técnico em informática.",
			Tags:     []string{"Suporte", "Libras", "Informática", "Atendimento", "Remoto"},
		}),
	}
}

func seed(id, companyID, postedAt string, f models.JobFields) models.JobPosting {
	created, _ := time.Parse(time.DateOnly, postedAt)
	return models.JobPosting{
		ID:        id,
		CompanyID: companyID,
		JobFields: f,
		Status:    models.JobActive,
		PostedAt:  postedAt,
		CreatedAt: created,
	}
}
