package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"job-catalog/internal/models"
)

func sampleCategory() *models.Category {
	return &models.Category{
		Name:        "FINANZAS",
		Description: "Trabajos relacionados con Finanzas y Contabilidad",
	}
}

func sampleCategories() []models.Category {
	return []models.Category{
		{
			Name:        "Programador de BlockChain",
			Description: "Trabajos relacionados con Bitcoin y Criptomonedas",
		},
		{
			Name:        "Soldador/Pintura",
			Description: "Trabajos relacionados con soldadura, pintura y enderezado",
		},
		{
			Name:        "Ing. Industrial",
			Description: "Trabajos relacionados con Ing. Industrial",
		},
	}
}

func sampleProfiles() []models.Profile {
	return []models.Profile{
		{Name: models.ProfileSupervisor},
		{Name: models.ProfileAdministrator},
		{Name: models.ProfileUser},
	}
}

func sampleJobPosting(now time.Time) *models.JobPosting {
	p := &models.JobPosting{
		Name:        "Profesor de Matemáticas",
		Description: "Las características para el puesto",
		Detail:      "<h1>Los requisitos para Profesor de Matematicas</h1>",
		Date:        now,
		Salary:      decimal.NewFromInt(5000),
		Status:      models.StatusApproved,
		Featured:    0,
		Image:       "escuela.png",
	}
	p.SetCategory(&models.Category{ID: 15})
	return p
}

// sampleUser holds the ADMINISTRADOR (2) and USUARIO (3) profiles by id.
func sampleUser(now time.Time) *models.User {
	u := &models.User{
		Name:         "Francisco Arias",
		Email:        "fjariasvilela@gmail.com",
		Username:     "FARIASV",
		Password:     "12345",
		RegisteredAt: now,
		Status:       1,
	}
	u.AddProfile(models.Profile{ID: 2})
	u.AddProfile(models.Profile{ID: 3})
	return u
}
