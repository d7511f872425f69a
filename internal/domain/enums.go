package domain

// UserRole is the marketplace side a user acts on.
type UserRole string

const (
	RoleJobSeeker UserRole = "JOB_SEEKER"
	RoleEmployer  UserRole = "EMPLOYER"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleJobSeeker, RoleEmployer:
		return true
	}
	return false
}

type JobType string

const (
	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypePartTime   JobType = "PART_TIME"
	JobTypeContract   JobType = "CONTRACT"
	JobTypeInternship JobType = "INTERNSHIP"
	JobTypeRemote     JobType = "REMOTE"
)

var JobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeRemote}

func (t JobType) Valid() bool {
	for _, v := range JobTypes {
		if v == t {
			return true
		}
	}
	return false
}

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "ENTRY"
	ExperienceMid       ExperienceLevel = "MID"
	ExperienceSenior    ExperienceLevel = "SENIOR"
	ExperienceExecutive ExperienceLevel = "EXECUTIVE"
)

var ExperienceLevels = []ExperienceLevel{ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceExecutive}

func (l ExperienceLevel) Valid() bool {
	for _, v := range ExperienceLevels {
		if v == l {
			return true
		}
	}
	return false
}

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "BEGINNER"
	SkillIntermediate SkillLevel = "INTERMEDIATE"
	SkillAdvanced     SkillLevel = "ADVANCED"
	SkillExpert       SkillLevel = "EXPERT"
)

func (l SkillLevel) Valid() bool {
	switch l {
	case SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert:
		return true
	}
	return false
}

// ApplicationStatus flow: PENDING on submit, then set by the posting owner.
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "PENDING"
	StatusReviewed    ApplicationStatus = "REVIEWED"
	StatusInterviewed ApplicationStatus = "INTERVIEWED"
	StatusOffered     ApplicationStatus = "OFFERED"
	StatusAccepted    ApplicationStatus = "ACCEPTED"
	StatusRejected    ApplicationStatus = "REJECTED"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusInterviewed, StatusOffered, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Settable reports whether an employer may assign s through the status
// endpoint. The remaining values exist on the type only.
func (s ApplicationStatus) Settable() bool {
	return s == StatusAccepted || s == StatusRejected
}
