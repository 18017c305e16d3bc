// Package validate holds the structural checks run against a fully merged
// candidate record before it reaches storage. Validators are pure: they never
// touch the store and never depend on who is asking. Checks run in a fixed
// field order and stop at the first violation.
package validate

import (
	"regexp"

	"github.com/crowdbase-dev/crowdbase/internal/apperror"
	"github.com/crowdbase-dev/crowdbase/internal/models"
)

const (
	minNameLen       = 3
	MinPasswordLen   = 8
	minSupporterGoal = 1
	maxSupporterGoal = 1_000_000_000
)

var mailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User checks the candidate user record. The password is validated by the
// gate before hashing; only the hashed form is present here.
func User(u models.User) error {
	if len(u.FullName) < minNameLen {
		return apperror.NewValidation(apperror.CodeNameTooShort)
	}
	if !mailPattern.MatchString(u.Mail) {
		return apperror.NewValidation(apperror.CodeMailInvalid)
	}
	if u.Gender != "" && !u.Gender.Valid() {
		return apperror.NewValidation(apperror.CodeGenderInvalid)
	}
	if !u.Role.Valid() {
		return apperror.NewValidation(apperror.CodeRoleInvalid)
	}
	return nil
}

// Password checks a plaintext password before it is hashed.
func Password(pw string) error {
	if len(pw) < MinPasswordLen {
		return apperror.NewValidation(apperror.CodePasswordTooShort)
	}
	return nil
}

func Project(p models.Project) error {
	if len(p.Title) < minNameLen {
		return apperror.NewValidation(apperror.CodeTitleTooShort)
	}
	if p.Description == "" {
		return apperror.NewValidation(apperror.CodeDescriptionMissing)
	}
	if !p.Status.Valid() {
		return apperror.NewValidation(apperror.CodeStatusInvalid)
	}
	if p.MoneyGoal < 0 {
		return apperror.NewValidation(apperror.CodeMoneyGoalNegative)
	}
	if p.MoneyPledged < 0 {
		return apperror.NewValidation(apperror.CodeMoneyPledgedNegative)
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return apperror.NewValidation(apperror.CodeLatOutOfRange)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return apperror.NewValidation(apperror.CodeLonOutOfRange)
	}
	return nil
}

func Task(t models.Task) error {
	if len(t.Title) < minNameLen {
		return apperror.NewValidation(apperror.CodeTitleTooShort)
	}
	if t.Description == "" {
		return apperror.NewValidation(apperror.CodeDescriptionMissing)
	}
	if t.SupporterGoal < minSupporterGoal || t.SupporterGoal > maxSupporterGoal {
		return apperror.NewValidation(apperror.CodeSupporterGoalOutOfRange)
	}
	return nil
}

func Application(a models.Application) error {
	if a.Text == "" {
		return apperror.NewValidation(apperror.CodeTextMissing)
	}
	return nil
}

func Category(c models.Category) error {
	if len(c.Name) < minNameLen {
		return apperror.NewValidation(apperror.CodeNameTooShort)
	}
	return nil
}

func Image(i models.Image) error {
	if i.Extension == "" || len(i.Extension) > 10 {
		return apperror.NewValidation(apperror.CodeExtensionInvalid)
	}
	return nil
}
