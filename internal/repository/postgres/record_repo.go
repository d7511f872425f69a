package postgres

import (
	"context"

	"jobmatch-backend/internal/domain"

	"gorm.io/gorm"
)

// recordRepo is the owner-scoped store shared by every CV record kind.
type recordRepo[T domain.Owned] struct {
	db      *gorm.DB
	orderBy []string
	columns []string
}

func newRecordRepo[T domain.Owned](db *gorm.DB, orderBy []string, columns []string) domain.RecordRepository[T] {
	return &recordRepo[T]{db: db, orderBy: orderBy, columns: columns}
}

func NewSkillRepository(db *gorm.DB) domain.RecordRepository[domain.Skill] {
	return newRecordRepo[domain.Skill](db,
		[]string{"name ASC", "id ASC"},
		[]string{"name", "level"})
}

func NewEducationRepository(db *gorm.DB) domain.RecordRepository[domain.Education] {
	return newRecordRepo[domain.Education](db,
		[]string{"start_date DESC", "id DESC"},
		[]string{"institution", "degree", "field_of_study", "start_date", "end_date", "description"})
}

func NewExperienceRepository(db *gorm.DB) domain.RecordRepository[domain.Experience] {
	return newRecordRepo[domain.Experience](db,
		[]string{"start_date DESC", "id DESC"},
		[]string{"job_title", "company", "start_date", "end_date", "description"})
}

func NewProjectRepository(db *gorm.DB) domain.RecordRepository[domain.Project] {
	return newRecordRepo[domain.Project](db,
		[]string{"start_date DESC", "id DESC"},
		[]string{"title", "description", "url", "start_date", "end_date"})
}

func (r *recordRepo[T]) ListByOwner(ctx context.Context, ownerID string) ([]T, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	for _, o := range r.orderBy {
		q = q.Order(o)
	}
	var recs []T
	if err := q.Find(&recs).Error; err != nil {
		return nil, translate(err)
	}
	return recs, nil
}

func (r *recordRepo[T]) Create(ctx context.Context, rec *T) error {
	return translate(r.db.WithContext(ctx).Create(rec).Error)
}

// UpdateOwned writes the editable columns, including zero values such as a
// cleared end date, then reloads rec from the stored row.
func (r *recordRepo[T]) UpdateOwned(ctx context.Context, id, ownerID string, rec *T) error {
	res := r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ? AND user_id = ?", id, ownerID).
		Select(r.columns).
		Updates(rec)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return translate(r.db.WithContext(ctx).First(rec, "id = ? AND user_id = ?", id, ownerID).Error)
}

func (r *recordRepo[T]) DeleteOwned(ctx context.Context, id, ownerID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(new(T))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
