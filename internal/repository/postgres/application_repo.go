package postgres

import (
	"context"

	"jobmatch-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type applicationRepo struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application; the (job_posting_id, user_id) unique
// index turns a second submission into domain.ErrDuplicate.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	if app.Status == "" {
		app.Status = domain.StatusPending
	}
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(app).Error)
}

func (r *applicationRepo) FindByJobAndUser(ctx context.Context, jobID, userID string) (*domain.Application, error) {
	var app domain.Application
	err := r.db.WithContext(ctx).
		Where("job_posting_id = ? AND user_id = ?", jobID, userID).
		First(&app).Error
	if err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	var apps []domain.Application
	err := r.db.WithContext(ctx).
		Where("job_posting_id = ?", jobID).
		Order("created_at DESC").Order("id DESC").
		Find(&apps).Error
	if err != nil {
		return nil, translate(err)
	}
	return apps, nil
}

// ownedBy scopes an application query to postings owned by ownerID.
func ownedBy(id, ownerID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Select("applications.*").
			Joins("JOIN job_postings ON job_postings.id = applications.job_posting_id").
			Where("applications.id = ? AND job_postings.user_id = ?", id, ownerID)
	}
}

func (r *applicationRepo) GetForOwner(ctx context.Context, id, ownerID string) (*domain.Application, error) {
	var app domain.Application
	if err := r.db.WithContext(ctx).Scopes(ownedBy(id, ownerID)).First(&app).Error; err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

func (r *applicationRepo) GetDetailForOwner(ctx context.Context, id, ownerID string) (*domain.Application, error) {
	var app domain.Application
	q := r.db.WithContext(ctx).
		Scopes(ownedBy(id, ownerID)).
		Preload("JobPosting").
		Preload("User")
	if err := preloadCV(q, "User").First(&app).Error; err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
