package postgres

import (
	"context"

	"jobmatch-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error)
}

func (r *userRepo) UpdateIdentity(ctx context.Context, id, name, email string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"name": name, "email": email})
}

func (r *userRepo) UpdateRole(ctx context.Context, id string, role domain.UserRole) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"role": role})
}

func (r *userRepo) updateColumns(ctx context.Context, id string, cols map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) SaveProfile(ctx context.Context, userID, name string, profile *domain.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.User{}).Where("id = ?", userID).Update("name", name)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		profile.UserID = userID
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"bio", "location", "phone", "website", "updated_at"}),
		}).Create(profile).Error
		return translate(err)
	})
}

func (r *userRepo) GetWithProfile(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Preload("Profile").First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) GetCV(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := preloadCV(r.db.WithContext(ctx)).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// preloadCV loads a user's CV sections under a preload path prefix so the
// same ordering serves direct and nested loads.
func preloadCV(db *gorm.DB, prefix ...string) *gorm.DB {
	p := ""
	if len(prefix) > 0 {
		p = prefix[0] + "."
	}
	byStart := func(db *gorm.DB) *gorm.DB { return db.Order("start_date DESC").Order("id DESC") }
	return db.
		Preload(p+"Profile").
		Preload(p+"Experiences", byStart).
		Preload(p+"Education", byStart).
		Preload(p+"Projects", byStart).
		Preload(p+"Skills", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") })
}
