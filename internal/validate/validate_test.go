package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crowdbase-dev/crowdbase/internal/apperror"
	"github.com/crowdbase-dev/crowdbase/internal/models"
)

func validUser() models.User {
	return models.User{
		FullName: "Valid Person",
		Mail:     "valid@example.com",
		Gender:   models.GenderOther,
		Role:     models.RoleSupporter,
	}
}

func TestUser(t *testing.T) {
	assert.NoError(t, User(validUser()))

	u := validUser()
	u.FullName = "ab"
	assert.Equal(t, apperror.CodeNameTooShort, apperror.CodeOf(User(u)))

	u = validUser()
	u.Mail = "not-a-mail"
	assert.Equal(t, apperror.CodeMailInvalid, apperror.CodeOf(User(u)))

	u = validUser()
	u.Gender = "UNKNOWN"
	assert.Equal(t, apperror.CodeGenderInvalid, apperror.CodeOf(User(u)))

	u = validUser()
	u.Gender = ""
	assert.NoError(t, User(u))

	u = validUser()
	u.Role = "OVERLORD"
	assert.Equal(t, apperror.CodeRoleInvalid, apperror.CodeOf(User(u)))
}

func TestUserFirstViolationWins(t *testing.T) {
	u := models.User{FullName: "x", Mail: "broken", Role: "BAD"}
	assert.Equal(t, apperror.CodeNameTooShort, apperror.CodeOf(User(u)))
}

func TestPassword(t *testing.T) {
	assert.NoError(t, Password("long-enough"))
	assert.Equal(t, apperror.CodePasswordTooShort, apperror.CodeOf(Password("short")))
}

func validProject() models.Project {
	return models.Project{
		Title:       "Valid Project",
		Description: "Something worthwhile",
		Status:      models.StatusPublic,
		MoneyGoal:   100,
	}
}

func TestProject(t *testing.T) {
	assert.NoError(t, Project(validProject()))

	p := validProject()
	p.Title = "ab"
	assert.Equal(t, apperror.CodeTitleTooShort, apperror.CodeOf(Project(p)))

	p = validProject()
	p.Description = ""
	assert.Equal(t, apperror.CodeDescriptionMissing, apperror.CodeOf(Project(p)))

	p = validProject()
	p.Status = "SHADOW"
	assert.Equal(t, apperror.CodeStatusInvalid, apperror.CodeOf(Project(p)))

	p = validProject()
	p.MoneyGoal = -1
	assert.Equal(t, apperror.CodeMoneyGoalNegative, apperror.CodeOf(Project(p)))

	p = validProject()
	p.MoneyPledged = -0.01
	assert.Equal(t, apperror.CodeMoneyPledgedNegative, apperror.CodeOf(Project(p)))

	p = validProject()
	p.Latitude = -90.5
	assert.Equal(t, apperror.CodeLatOutOfRange, apperror.CodeOf(Project(p)))

	p = validProject()
	p.Longitude = 180.5
	assert.Equal(t, apperror.CodeLonOutOfRange, apperror.CodeOf(Project(p)))

	p = validProject()
	p.Latitude = 90
	p.Longitude = -180
	assert.NoError(t, Project(p))
}

func TestTask(t *testing.T) {
	valid := models.Task{Title: "Valid Task", Description: "Do the thing", SupporterGoal: 1}
	assert.NoError(t, Task(valid))

	task := valid
	task.SupporterGoal = 0
	assert.Equal(t, apperror.CodeSupporterGoalOutOfRange, apperror.CodeOf(Task(task)))

	task = valid
	task.SupporterGoal = 1_000_000_000
	assert.NoError(t, Task(task))

	task = valid
	task.SupporterGoal = 1_000_000_001
	assert.Equal(t, apperror.CodeSupporterGoalOutOfRange, apperror.CodeOf(Task(task)))
}

func TestApplication(t *testing.T) {
	assert.NoError(t, Application(models.Application{Text: "hi"}))
	assert.Equal(t, apperror.CodeTextMissing, apperror.CodeOf(Application(models.Application{})))
}

func TestCategory(t *testing.T) {
	assert.NoError(t, Category(models.Category{Name: "Art"}))
	assert.Equal(t, apperror.CodeNameTooShort, apperror.CodeOf(Category(models.Category{Name: "ab"})))
}

func TestImage(t *testing.T) {
	assert.NoError(t, Image(models.Image{Extension: "png"}))
	assert.Equal(t, apperror.CodeExtensionInvalid, apperror.CodeOf(Image(models.Image{})))
	assert.Equal(t, apperror.CodeExtensionInvalid, apperror.CodeOf(Image(models.Image{Extension: "waytoolongext"})))
}
