// Package seed fills a development database with realistic demo data.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobmatch-backend/internal/domain"
	"jobmatch-backend/internal/repository/postgres"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options sizes a seed run. Seed makes the run reproducible; 0 picks one
// from the clock.
type Options struct {
	Employers             int
	Seekers               int
	JobsPerEmployer       int
	ApplicationsPerSeeker int
	Seed                  int64
}

func DefaultOptions() Options {
	return Options{Employers: 5, Seekers: 30, JobsPerEmployer: 4, ApplicationsPerSeeker: 3}
}

// Summary counts what a run created.
type Summary struct {
	Users        int
	Jobs         int
	Applications int
	Records      int
}

type Seeder struct {
	db    *gorm.DB
	opts  Options
	faker *gofakeit.Faker

	users       domain.UserRepository
	jobs        domain.JobRepository
	apps        domain.ApplicationRepository
	skills      domain.RecordRepository[domain.Skill]
	education   domain.RecordRepository[domain.Education]
	experiences domain.RecordRepository[domain.Experience]
	projects    domain.RecordRepository[domain.Project]
}

func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Seeder{
		db:          db,
		opts:        opts,
		faker:       gofakeit.New(seed),
		users:       postgres.NewUserRepository(db),
		jobs:        postgres.NewJobRepository(db),
		apps:        postgres.NewApplicationRepository(db),
		skills:      postgres.NewSkillRepository(db),
		education:   postgres.NewEducationRepository(db),
		experiences: postgres.NewExperienceRepository(db),
		projects:    postgres.NewProjectRepository(db),
	}
}

// Clear deletes every row, children first.
func (s *Seeder) Clear(ctx context.Context) error {
	models := []interface{}{
		&domain.Application{}, &domain.JobPosting{},
		&domain.Skill{}, &domain.Education{}, &domain.Experience{}, &domain.Project{},
		&domain.Profile{}, &domain.User{},
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range models {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return fmt.Errorf("clear %T: %w", m, err)
			}
		}
		return nil
	})
}

func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	var postings []domain.JobPosting
	for i := 0; i < s.opts.Employers; i++ {
		emp, err := s.createUser(ctx, domain.RoleEmployer)
		if err != nil {
			return sum, err
		}
		sum.Users++

		for j := 0; j < s.opts.JobsPerEmployer; j++ {
			job := s.buildJob(emp.ID)
			if err := s.jobs.Create(ctx, job); err != nil {
				return sum, fmt.Errorf("create job: %w", err)
			}
			postings = append(postings, *job)
			sum.Jobs++
		}
	}

	for i := 0; i < s.opts.Seekers; i++ {
		seeker, err := s.createUser(ctx, domain.RoleJobSeeker)
		if err != nil {
			return sum, err
		}
		sum.Users++

		n, err := s.createCV(ctx, seeker.ID)
		if err != nil {
			return sum, err
		}
		sum.Records += n

		applied, err := s.applyToSome(ctx, seeker.ID, postings)
		if err != nil {
			return sum, err
		}
		sum.Applications += applied
	}
	return sum, nil
}

func (s *Seeder) createUser(ctx context.Context, role domain.UserRole) (*domain.User, error) {
	f := s.faker
	user := &domain.User{
		ExternalID: "seed|" + f.UUID(),
		Name:       f.Name(),
		Email:      strings.ToLower(f.Email()),
		Role:       role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	profile := &domain.Profile{
		Bio:      f.Sentence(12),
		Location: f.City(),
		Phone:    "+40" + f.Numerify("7########"),
		Website:  f.URL(),
	}
	if err := s.users.SaveProfile(ctx, user.ID, user.Name, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return user, nil
}

var (
	jobTypes         = []domain.JobType{domain.JobTypeFullTime, domain.JobTypePartTime, domain.JobTypeContract, domain.JobTypeInternship, domain.JobTypeRemote}
	experienceLevels = []domain.ExperienceLevel{domain.ExperienceEntry, domain.ExperienceMid, domain.ExperienceSenior, domain.ExperienceExecutive}
	skillLevels      = []domain.SkillLevel{domain.SkillBeginner, domain.SkillIntermediate, domain.SkillAdvanced, domain.SkillExpert}
)

func (s *Seeder) buildJob(ownerID string) *domain.JobPosting {
	f := s.faker
	job := &domain.JobPosting{
		Title:           f.JobTitle(),
		Company:         f.Company(),
		Location:        f.City(),
		Description:     f.Paragraph(2, 4, 12, "\n\n"),
		JobType:         jobTypes[f.Number(0, len(jobTypes)-1)],
		ExperienceLevel: experienceLevels[f.Number(0, len(experienceLevels)-1)],
		UserID:          ownerID,
	}
	if f.Bool() {
		salary := float64(f.Number(30, 200) * 100)
		job.Salary = &salary
	}
	for i := f.Number(2, 5); i > 0; i-- {
		job.Requirements = append(job.Requirements, f.ProgrammingLanguage())
	}
	// spread postings over the last quarter so listings have an order
	job.CreatedAt = time.Now().UTC().Add(-time.Duration(f.Number(0, 90*24)) * time.Hour)
	return job
}

func (s *Seeder) createCV(ctx context.Context, userID string) (int, error) {
	f := s.faker
	created := 0
	now := time.Now().UTC()

	seen := map[string]bool{}
	for i := f.Number(2, 5); i > 0; i-- {
		name := f.ProgrammingLanguage()
		if seen[name] {
			continue
		}
		seen[name] = true
		if err := s.skills.Create(ctx, &domain.Skill{UserID: userID, Name: name, Level: skillLevels[f.Number(0, len(skillLevels)-1)]}); err != nil {
			return created, fmt.Errorf("create skill: %w", err)
		}
		created++
	}

	start := f.DateRange(now.AddDate(-15, 0, 0), now.AddDate(-10, 0, 0)).Truncate(24 * time.Hour)
	end := start.AddDate(f.Number(3, 5), 0, 0)
	if err := s.education.Create(ctx, &domain.Education{
		UserID:       userID,
		Institution:  "Universitatea " + f.LastName(),
		Degree:       "Licență",
		FieldOfStudy: f.RandomString([]string{"Informatică", "Automatică", "Matematică", "Economie"}),
		StartDate:    start,
		EndDate:      &end,
	}); err != nil {
		return created, fmt.Errorf("create education: %w", err)
	}
	created++

	cursor := end
	for i := f.Number(1, 3); i > 0; i-- {
		expEnd := cursor.AddDate(f.Number(1, 3), 0, 0)
		exp := &domain.Experience{
			UserID:      userID,
			JobTitle:    f.JobTitle(),
			Company:     f.Company(),
			StartDate:   cursor,
			Description: f.Sentence(15),
		}
		// the latest position stays open
		if i > 1 && expEnd.Before(now) {
			exp.EndDate = &expEnd
		}
		if err := s.experiences.Create(ctx, exp); err != nil {
			return created, fmt.Errorf("create experience: %w", err)
		}
		created++
		cursor = expEnd
	}

	if err := s.projects.Create(ctx, &domain.Project{
		UserID:      userID,
		Title:       f.AppName(),
		Description: f.Sentence(14),
		URL:         f.URL(),
		StartDate:   f.DateRange(now.AddDate(-3, 0, 0), now.AddDate(0, -1, 0)).Truncate(24 * time.Hour),
	}); err != nil {
		return created, fmt.Errorf("create project: %w", err)
	}
	return created + 1, nil
}

// applyToSome applies userID to up to ApplicationsPerSeeker distinct postings.
func (s *Seeder) applyToSome(ctx context.Context, userID string, postings []domain.JobPosting) (int, error) {
	n := s.opts.ApplicationsPerSeeker
	if n > len(postings) {
		n = len(postings)
	}
	if n == 0 {
		return 0, nil
	}

	f := s.faker
	offset := f.Number(0, len(postings)-1)
	statuses := []domain.ApplicationStatus{domain.StatusPending, domain.StatusPending, domain.StatusReviewed, domain.StatusAccepted, domain.StatusRejected}
	for i := 0; i < n; i++ {
		job := postings[(offset+i)%len(postings)]
		app := &domain.Application{
			JobPostingID: job.ID,
			UserID:       userID,
			CoverLetter:  f.Paragraph(1, 4, 12, " "),
			Status:       statuses[f.Number(0, len(statuses)-1)],
		}
		if err := s.apps.Create(ctx, app); err != nil {
			return i, fmt.Errorf("create application: %w", err)
		}
	}
	return n, nil
}
