package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"job-catalog/internal/models"
	"job-catalog/internal/repository"
)

func (r *Runner) operations() map[string]Operation {
	return map[string]Operation{
		"categories-save":                r.saveCategory,
		"categories-find-by-id":          r.findCategory,
		"categories-update":              r.updateCategory,
		"categories-delete-by-id":        r.deleteCategory,
		"categories-count":               r.countCategories,
		"categories-delete-all":          r.deleteAllCategories,
		"categories-find-all-by-id":      r.findCategoriesByID,
		"categories-find-all":            r.findAllCategories,
		"categories-exists":              r.categoryExists,
		"categories-save-all":            r.saveAllCategories,
		"categories-delete-all-in-batch": r.deleteCategoriesInBatch,
		"categories-sorted":              r.sortedCategories,
		"categories-paged":               r.pagedCategories,
		"categories-paged-sorted":        r.pagedSortedCategories,

		"job-postings-find-all":           r.findAllPostings,
		"job-postings-save":               r.savePosting,
		"job-postings-by-status":          r.postingsByStatus,
		"job-postings-by-featured-status": r.postingsByFeaturedStatus,
		"job-postings-by-salary":          r.postingsBySalary,
		"job-postings-by-statuses":        r.postingsByStatuses,

		"profiles-create":            r.createProfiles,
		"users-create-with-profiles": r.createUserWithProfiles,
		"users-find":                 r.findUser,
	}
}

func (r *Runner) saveCategory(ctx context.Context) (string, error) {
	c, err := r.repos.Categories.Save(ctx, sampleCategory())
	if err != nil {
		return "", err
	}
	return c.String() + "\n", nil
}

func (r *Runner) findCategory(ctx context.Context) (string, error) {
	c, err := r.repos.Categories.FindByID(ctx, 5)
	if err != nil {
		return "", err
	}
	if c == nil {
		return msgCategoryNotFound + "\n", nil
	}
	return c.String() + "\n", nil
}

func (r *Runner) updateCategory(ctx context.Context) (string, error) {
	c, err := r.repos.Categories.FindByID(ctx, 2)
	if err != nil {
		return "", err
	}
	if c == nil {
		return msgCategoryNotFound + "\n", nil
	}

	c.Name = "INGENIERIA DE SOFTWARE"
	c.Description = "Desarrollo de sistemas"

	saved, err := r.repos.Categories.Save(ctx, c)
	if notFound(err) {
		return msgCategoryNotFound + "\n", nil
	}
	if err != nil {
		return "", err
	}
	return saved.String() + "\n", nil
}

func (r *Runner) deleteCategory(ctx context.Context) (string, error) {
	const id = 1

	err := r.repos.Categories.DeleteByID(ctx, id)
	if notFound(err) {
		return msgCategoryNotFound + "\n", nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Categoría eliminada: %d\n", id), nil
}

func (r *Runner) countCategories(ctx context.Context) (string, error) {
	count, err := r.repos.Categories.Count(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Total categorias: %d\n", count), nil
}

func (r *Runner) deleteAllCategories(ctx context.Context) (string, error) {
	if err := r.repos.Categories.DeleteAll(ctx); err != nil {
		return "", err
	}
	return "Categorías eliminadas\n", nil
}

func (r *Runner) findCategoriesByID(ctx context.Context) (string, error) {
	categories, err := r.repos.Categories.FindAllByID(ctx, []int64{1, 4, 10})
	if err != nil {
		return "", err
	}
	return FormatCategories(categories), nil
}

func (r *Runner) findAllCategories(ctx context.Context) (string, error) {
	categories, err := r.repos.Categories.FindAll(ctx)
	if err != nil {
		return "", err
	}
	return FormatCategories(categories), nil
}

func (r *Runner) categoryExists(ctx context.Context) (string, error) {
	exists, err := r.repos.Categories.ExistsByID(ctx, 5)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("¿La categoria existe? : %t\n", exists), nil
}

func (r *Runner) saveAllCategories(ctx context.Context) (string, error) {
	saved, err := r.repos.Categories.SaveAll(ctx, sampleCategories())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Categorías guardadas: %d\n", len(saved)) + FormatCategoryList(saved), nil
}

func (r *Runner) deleteCategoriesInBatch(ctx context.Context) (string, error) {
	if err := r.repos.Categories.DeleteAllInBatch(ctx); err != nil {
		return "", err
	}
	return "Categorías eliminadas en bloque\n", nil
}

func (r *Runner) sortedCategories(ctx context.Context) (string, error) {
	categories, err := r.repos.Categories.FindAllSorted(ctx, repository.SortBy("name").Descending())
	if err != nil {
		return "", err
	}
	return FormatCategoryList(categories), nil
}

func (r *Runner) pagedCategories(ctx context.Context) (string, error) {
	page, err := r.repos.Categories.FindPage(ctx, repository.PageOf(0, 5))
	if err != nil {
		return "", err
	}
	return FormatCategoryPage(page), nil
}

func (r *Runner) pagedSortedCategories(ctx context.Context) (string, error) {
	page, err := r.repos.Categories.FindPage(ctx, repository.PageOf(0, 5, repository.SortBy("name")))
	if err != nil {
		return "", err
	}
	return FormatCategoryPage(page), nil
}

func (r *Runner) findAllPostings(ctx context.Context) (string, error) {
	postings, err := r.repos.JobPostings.FindAll(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, p := range postings {
		sb.WriteString(postingCategoryLine(p))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func (r *Runner) savePosting(ctx context.Context) (string, error) {
	p, err := r.repos.JobPostings.Save(ctx, sampleJobPosting(time.Now().UTC()))
	if err != nil {
		return "", err
	}
	return p.String() + "\n", nil
}

func (r *Runner) postingsByStatus(ctx context.Context) (string, error) {
	postings, err := r.repos.JobPostings.FindByStatus(ctx, models.StatusApproved)
	if err != nil {
		return "", err
	}
	return FormatPostings(postings, postingStatusLine), nil
}

func (r *Runner) postingsByFeaturedStatus(ctx context.Context) (string, error) {
	postings, err := r.repos.JobPostings.FindByFeaturedAndStatusOrderByIDDesc(ctx, 1, models.StatusApproved)
	if err != nil {
		return "", err
	}
	return FormatPostings(postings, postingFeaturedLine), nil
}

func (r *Runner) postingsBySalary(ctx context.Context) (string, error) {
	postings, err := r.repos.JobPostings.FindBySalaryBetweenOrderBySalaryDesc(ctx,
		decimal.NewFromInt(7000), decimal.NewFromInt(14000))
	if err != nil {
		return "", err
	}
	return FormatPostings(postings, postingSalaryLine), nil
}

func (r *Runner) postingsByStatuses(ctx context.Context) (string, error) {
	postings, err := r.repos.JobPostings.FindByStatusIn(ctx, []string{models.StatusDeleted, models.StatusCreated})
	if err != nil {
		return "", err
	}
	return FormatPostings(postings, postingStatusLine), nil
}

func (r *Runner) createProfiles(ctx context.Context) (string, error) {
	saved, err := r.repos.Profiles.SaveAll(ctx, sampleProfiles())
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Perfiles creados: %d\n", len(saved)))
	for _, p := range saved {
		sb.WriteString(fmt.Sprintf("%d %s\n", p.ID, p.Name))
	}
	return sb.String(), nil
}

func (r *Runner) createUserWithProfiles(ctx context.Context) (string, error) {
	u, err := r.repos.Users.Save(ctx, sampleUser(time.Now().UTC()))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Usuario creado: %d %s\n", u.ID, u.Username), nil
}

func (r *Runner) findUser(ctx context.Context) (string, error) {
	u, err := r.repos.Users.FindByID(ctx, 1)
	if err != nil {
		return "", err
	}
	if u == nil {
		return msgUserNotFound + "\n", nil
	}
	return FormatUser(u), nil
}
