package postgres

import (
	"context"
	"strings"

	"jobmatch-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.JobPosting) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(job).Error)
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	var job domain.JobPosting
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

func (r *jobRepo) GetWithPoster(ctx context.Context, id string) (*domain.JobPosting, error) {
	var job domain.JobPosting
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&job, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

// Search matches the term case-insensitively as a substring of title,
// company or description. LOWER(..) LIKE keeps the query portable across
// Postgres and SQLite.
func (r *jobRepo) Search(ctx context.Context, filter domain.JobFilter) ([]domain.JobPosting, error) {
	q := r.db.WithContext(ctx).Model(&domain.JobPosting{})

	if term := strings.TrimSpace(filter.Search); term != "" {
		like := "%" + escapeLike(strings.ToLower(term)) + "%"
		q = q.Where(
			"(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(company) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')",
			like, like, like,
		)
	}
	if len(filter.JobTypes) > 0 {
		q = q.Where("job_type IN ?", filter.JobTypes)
	}
	if len(filter.ExperienceLevels) > 0 {
		q = q.Where("experience_level IN ?", filter.ExperienceLevels)
	}

	var jobs []domain.JobPosting
	err := q.Order("created_at DESC").Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&jobs).Error
	if err != nil {
		return nil, translate(err)
	}
	return jobs, nil
}

func (r *jobRepo) ListByOwnerWithApplications(ctx context.Context, ownerID string) ([]domain.JobPosting, error) {
	var jobs []domain.JobPosting
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Preload("Applications", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Order("id DESC")
		}).
		Preload("Applications.User").
		Order("created_at DESC").Order("id DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, translate(err)
	}
	return jobs, nil
}

func (r *jobRepo) DeleteOwnedCascade(ctx context.Context, id, ownerID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job domain.JobPosting
		err := tx.Select("id", "user_id").
			Where("id = ? AND user_id = ?", id, ownerID).
			First(&job).Error
		if err != nil {
			return translate(err)
		}

		if err := tx.Where("job_posting_id = ?", id).Delete(&domain.Application{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", id, ownerID).Delete(&domain.JobPosting{}).Error
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
