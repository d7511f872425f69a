package usecase_test

import (
	"context"
	"strings"
	"testing"

	"jobmatch-backend/internal/domain"
	"jobmatch-backend/internal/repository/postgres"
	"jobmatch-backend/internal/usecase"
	"jobmatch-backend/pkg/apperror"
	"jobmatch-backend/pkg/database"
	"jobmatch-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

// TestHiringFlow walks a posting from creation to rejection and deletion
// against real repositories.
func TestHiringFlow(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	c, _ := newTestCache(t)
	v := validation.New()

	users := postgres.NewUserRepository(db)
	jobs := postgres.NewJobRepository(db)
	apps := postgres.NewApplicationRepository(db)

	authUC := usecase.NewAuthUsecase(users, nil, v)
	jobUC := usecase.NewJobUsecase(jobs, apps, users, c, nil, v)
	appUC := usecase.NewApplicationUsecase(apps, jobs, users, nil, v)

	emp := domain.Caller{IdentityID: "idp|emp", Email: "hr@acme.ro", Name: "Acme HR"}
	ana := domain.Caller{IdentityID: "idp|ana", Email: "ana@example.com", Name: "Ana"}

	_, err := authUC.SyncUser(ctx, emp)
	require.NoError(t, err)
	_, err = authUC.ChangeRole(ctx, emp, domain.RoleInput{Role: "EMPLOYER"})
	require.NoError(t, err)
	_, err = authUC.SyncUser(ctx, ana)
	require.NoError(t, err)

	job, err := jobUC.CreatePosting(ctx, emp, postingInput())
	require.NoError(t, err)

	listed, err := jobUC.Search(ctx, domain.JobFilter{Search: "go dev"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, domain.StringList{"Go", "Kubernetes"}, listed[0].Requirements)

	app, err := appUC.Apply(ctx, ana, job.ID, domain.ApplyInput{CoverLetter: strings.Repeat("x", 60)})
	require.NoError(t, err)

	_, err = appUC.Apply(ctx, ana, job.ID, domain.ApplyInput{CoverLetter: strings.Repeat("x", 60)})
	assert.True(t, apperror.Is(err, apperror.KindDuplicateApplication))

	detail, err := jobUC.Detail(ctx, ana, job.ID)
	require.NoError(t, err)
	assert.True(t, detail.HasApplied)
	assert.Equal(t, "Acme HR", detail.Poster.Name)

	dash, err := jobUC.EmployerDashboard(ctx, emp)
	require.NoError(t, err)
	require.Len(t, dash, 1)
	require.Len(t, dash[0].Applications, 1)
	assert.Equal(t, "Ana", dash[0].Applications[0].User.Name)

	_, err = appUC.UpdateStatus(ctx, ana, app.ID, domain.StatusInput{Status: "REJECTED"})
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	change, err := appUC.UpdateStatus(ctx, emp, app.ID, domain.StatusInput{Status: "REJECTED"})
	require.NoError(t, err)
	assert.Equal(t, usecase.MsgApplicationRejected, change.Message)

	dash, err = jobUC.EmployerDashboard(ctx, emp)
	require.NoError(t, err)
	assert.Empty(t, dash[0].Applications)

	require.NoError(t, jobUC.DeletePosting(ctx, emp, job.ID))
	_, err = jobUC.Detail(ctx, domain.Caller{}, job.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	var remaining int64
	require.NoError(t, db.Model(&domain.Application{}).Count(&remaining).Error)
	assert.Zero(t, remaining)

	listed, err = jobUC.Search(ctx, domain.JobFilter{})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCVFlow(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	c, mr := newTestCache(t)
	v := validation.New()

	users := postgres.NewUserRepository(db)
	authUC := usecase.NewAuthUsecase(users, nil, v)
	profileUC := usecase.NewProfileUsecase(users, c, v)
	skillUC := usecase.NewSkillUsecase(postgres.NewSkillRepository(db), users, c, v)
	expUC := usecase.NewExperienceUsecase(postgres.NewExperienceRepository(db), users, c, v)

	ana := domain.Caller{IdentityID: "idp|ana", Email: "ana@example.com", Name: "Ana"}
	bob := domain.Caller{IdentityID: "idp|bob", Email: "bob@example.com", Name: "Bob"}
	user, err := authUC.SyncUser(ctx, ana)
	require.NoError(t, err)
	_, err = authUC.SyncUser(ctx, bob)
	require.NoError(t, err)

	cv, err := profileUC.GetCV(ctx, ana)
	require.NoError(t, err)
	assert.Empty(t, cv.Skills)
	assert.True(t, mr.Exists("cv:"+user.ID))

	skill, err := skillUC.Add(ctx, ana, domain.SkillInput{Name: "Go", Level: "EXPERT"})
	require.NoError(t, err)
	assert.False(t, mr.Exists("cv:"+user.ID), "writes drop the cached cv")

	cv, err = profileUC.GetCV(ctx, ana)
	require.NoError(t, err)
	require.Len(t, cv.Skills, 1)
	assert.Equal(t, domain.SkillExpert, cv.Skills[0].Level)

	t.Run("Records are scoped to their owner", func(t *testing.T) {
		_, err := skillUC.Update(ctx, bob, skill.ID, domain.SkillInput{Name: "Rust", Level: "BEGINNER"})
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
		assert.True(t, apperror.Is(skillUC.Delete(ctx, bob, skill.ID), apperror.KindNotFound))

		bobs, err := skillUC.List(ctx, bob)
		require.NoError(t, err)
		assert.NotNil(t, bobs)
		assert.Empty(t, bobs)
	})

	t.Run("Update keeps the identity", func(t *testing.T) {
		updated, err := skillUC.Update(ctx, ana, skill.ID, domain.SkillInput{Name: "Go", Level: "ADVANCED"})
		require.NoError(t, err)
		assert.Equal(t, skill.ID, updated.ID)
		assert.Equal(t, domain.SkillAdvanced, updated.Level)
	})

	t.Run("Experience end date must follow start date", func(t *testing.T) {
		_, err := expUC.Add(ctx, ana, domain.ExperienceInput{
			JobTitle: "Engineer", Company: "Acme", StartDate: "2022-01-01", EndDate: "2021-01-01",
			Description: "Payments and billing.",
		})
		assert.True(t, apperror.Is(err, apperror.KindValidation))

		exp, err := expUC.Add(ctx, ana, domain.ExperienceInput{
			JobTitle: "Engineer", Company: "Acme", StartDate: "2022-01-01",
			Description: "Payments and billing.",
		})
		require.NoError(t, err)
		assert.Nil(t, exp.EndDate)
	})

	t.Run("Profile update renames the user", func(t *testing.T) {
		updated, err := profileUC.UpdateProfile(ctx, ana, domain.ProfileInput{Name: "Ana Pop", Bio: "Backend dev", Location: "Cluj"})
		require.NoError(t, err)
		assert.Equal(t, "Ana Pop", updated.Name)
		require.NotNil(t, updated.Profile)
		assert.Equal(t, "Cluj", updated.Profile.Location)

		_, err = profileUC.UpdateProfile(ctx, ana, domain.ProfileInput{Name: "A"})
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})
}
