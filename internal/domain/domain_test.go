package domain_test

import (
	"testing"
	"time"

	"jobmatch-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementList(t *testing.T) {
	in := domain.JobPostingInput{Requirements: "Go\r\n\n  SQL  \n\nDocker\n"}
	assert.Equal(t, domain.StringList{"Go", "SQL", "Docker"}, in.RequirementList())

	empty := domain.JobPostingInput{Requirements: "\n \n"}
	assert.Empty(t, empty.RequirementList())
}

func TestSalaryValue(t *testing.T) {
	t.Run("Empty salary is nil", func(t *testing.T) {
		v, err := domain.JobPostingInput{Salary: "  "}.SalaryValue()
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("Numeric salary is parsed", func(t *testing.T) {
		v, err := domain.JobPostingInput{Salary: "4500.50"}.SalaryValue()
		require.NoError(t, err)
		require.NotNil(t, v)
		assert.Equal(t, 4500.50, *v)
	})

	t.Run("Garbage salary fails", func(t *testing.T) {
		_, err := domain.JobPostingInput{Salary: "a lot"}.SalaryValue()
		assert.Error(t, err)
	})
}

func TestEnums(t *testing.T) {
	assert.True(t, domain.RoleEmployer.Valid())
	assert.False(t, domain.UserRole("ADMIN").Valid())
	assert.True(t, domain.JobTypeRemote.Valid())
	assert.False(t, domain.JobType("full_time").Valid())
	assert.True(t, domain.ExperienceExecutive.Valid())
	assert.True(t, domain.SkillExpert.Valid())
	assert.False(t, domain.SkillLevel("GURU").Valid())

	assert.True(t, domain.StatusOffered.Valid())
	assert.False(t, domain.StatusOffered.Settable())
	assert.True(t, domain.StatusAccepted.Settable())
	assert.True(t, domain.StatusRejected.Settable())
	assert.False(t, domain.StatusPending.Settable())
}

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate("2023-04-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = domain.ParseDate("2023-04-01T10:00:00Z")
	assert.NoError(t, err)

	_, err = domain.ParseDate("01/04/2023")
	assert.Error(t, err)

	none, err := domain.ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestStringListRoundTrip(t *testing.T) {
	v, err := domain.StringList{"Go", "has space", `quo"te`}.Value()
	require.NoError(t, err)

	var out domain.StringList
	require.NoError(t, out.Scan(v))
	assert.Equal(t, domain.StringList{"Go", "has space", `quo"te`}, out)

	nilValue, err := domain.StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", nilValue)
}

func TestCaller(t *testing.T) {
	assert.False(t, domain.Caller{}.Authenticated())
	assert.True(t, domain.Caller{IdentityID: "idp|1"}.Authenticated())
}

func TestJobFilterNormalized(t *testing.T) {
	f := domain.JobFilter{Search: "  go ", Page: 0, Limit: 0}.Normalized()
	assert.Equal(t, "go", f.Search)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, domain.DefaultPageSize, f.Limit)
	assert.Equal(t, 0, f.Offset())

	f = domain.JobFilter{Page: 3, Limit: 500}.Normalized()
	assert.Equal(t, domain.MaxPageSize, f.Limit)
	assert.Equal(t, 200, f.Offset())
}

func TestParseFilterLists(t *testing.T) {
	assert.Equal(t,
		[]domain.JobType{domain.JobTypeFullTime, domain.JobTypeRemote},
		domain.ParseJobTypes("FULL_TIME, remote,FREELANCE,"))
	assert.Nil(t, domain.ParseJobTypes(""))
	assert.Equal(t,
		[]domain.ExperienceLevel{domain.ExperienceSenior},
		domain.ParseExperienceLevels("SENIOR,JUNIOR"))
}
