package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"job-catalog/internal/models"
	"job-catalog/internal/repository"
)

const (
	msgCategoryNotFound = "Categoría no encontrada"
	msgUserNotFound     = "Usuario no encontrado"
)

func FormatSalary(salary decimal.Decimal) string {
	return "$ " + salary.StringFixed(2)
}

// FormatCategories prints one Category per line using its String form.
func FormatCategories(categories []models.Category) string {
	var sb strings.Builder
	for _, c := range categories {
		sb.WriteString(c.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatCategoryList prints "id name" per line.
func FormatCategoryList(categories []models.Category) string {
	var sb strings.Builder
	for _, c := range categories {
		sb.WriteString(fmt.Sprintf("%d %s\n", c.ID, c.Name))
	}
	return sb.String()
}

func FormatCategoryPage(page *repository.Page[models.Category]) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Total registros: %d\n", page.TotalElements))
	sb.WriteString(fmt.Sprintf("Total páginas: %d\n", page.TotalPages()))
	sb.WriteString(FormatCategoryList(page.Content))

	return sb.String()
}

// FormatPostings prints a count header followed by one line per posting,
// built by line.
func FormatPostings(postings []models.JobPosting, line func(models.JobPosting) string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Registros encontrados: %d\n", len(postings)))
	for _, p := range postings {
		sb.WriteString(line(p))
		sb.WriteString("\n")
	}

	return sb.String()
}

func postingStatusLine(p models.JobPosting) string {
	return fmt.Sprintf("%d : %s : %s", p.ID, p.Name, p.Status)
}

func postingSalaryLine(p models.JobPosting) string {
	return fmt.Sprintf("%d : %s : %s", p.ID, p.Name, FormatSalary(p.Salary))
}

func postingFeaturedLine(p models.JobPosting) string {
	return fmt.Sprintf("%d : %s : %s : %d", p.ID, p.Name, p.Status, p.Featured)
}

// postingCategoryLine prints "id name -> category". A posting whose category
// could not be loaded shows "-".
func postingCategoryLine(p models.JobPosting) string {
	category := "-"
	if p.Category != nil {
		category = p.Category.Name
	}
	return fmt.Sprintf("%d %s -> %s", p.ID, p.Name, category)
}

func FormatUser(u *models.User) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Usuario: %s\n", u.Name))
	sb.WriteString("Perfiles asignados\n")
	for _, p := range u.Profiles {
		sb.WriteString(p.Name)
		sb.WriteString("\n")
	}

	return sb.String()
}
