package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"jobmatch-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

var (
	// E164-like phone: optional +, digits 7-15 length, spaces and dashes allowed between groups
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 -]{5,18}[0-9]$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("iso_date", ISODate)
	_ = v.RegisterValidation("date_after", DateAfter)
	_ = v.RegisterValidation("non_negative_number", NonNegativeNumber)
	_ = v.RegisterValidation("job_type", enumRule(func(s string) bool { return domain.JobType(s).Valid() }))
	_ = v.RegisterValidation("experience_level", enumRule(func(s string) bool { return domain.ExperienceLevel(s).Valid() }))
	_ = v.RegisterValidation("skill_level", enumRule(func(s string) bool { return domain.SkillLevel(s).Valid() }))
	_ = v.RegisterValidation("user_role", enumRule(func(s string) bool { return domain.UserRole(s).Valid() }))
	_ = v.RegisterValidation("settable_status", enumRule(func(s string) bool { return domain.ApplicationStatus(s).Settable() }))
}

func enumRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return valid(fl.Field().String())
	}
}

// ValidPhone validates a phone number structure
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	if !phoneRegex.MatchString(val) {
		return false
	}
	digits := strings.NewReplacer(" ", "", "-", "", "+", "").Replace(val)
	return len(digits) >= 7 && len(digits) <= 15
}

// ISODate accepts YYYY-MM-DD or a full RFC3339 timestamp.
func ISODate(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, ok := parseDate(val)
	return ok
}

// DateAfter checks that the field is not before the sibling date field named
// by the param. Unparseable or empty siblings are left to their own rules.
func DateAfter(fl validator.FieldLevel) bool {
	end, ok := parseDate(fl.Field().String())
	if !ok {
		return true
	}
	sibling := fl.Parent().FieldByName(fl.Param())
	if !sibling.IsValid() {
		return true
	}
	start, ok := parseDate(sibling.String())
	if !ok {
		return true
	}
	return !end.Before(start)
}

func NonNegativeNumber(fl validator.FieldLevel) bool {
	val := strings.TrimSpace(fl.Field().String())
	if val == "" {
		return true
	}
	n, err := strconv.ParseFloat(val, 64)
	return err == nil && n >= 0
}

func parseDate(val string) (time.Time, bool) {
	t, err := domain.ParseDate(val)
	return t, err == nil
}
