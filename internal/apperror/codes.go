package apperror

// Code is a stable, externally observable validation error identifier.
// Clients switch on these values, so renaming one is a breaking change.
type Code string

const (
	// User
	CodeNameTooShort     Code = "NAME_TOO_SHORT"
	CodeMailInvalid      Code = "MAIL_INVALID"
	CodeMailAlreadyUsed  Code = "MAIL_ALREADY_USED"
	CodePasswordTooShort Code = "PASSWORD_TOO_SHORT"
	CodeRoleInvalid      Code = "ROLE_INVALID"
	CodeGenderInvalid    Code = "GENDER_INVALID"

	// Project
	CodeTitleTooShort       Code = "TITLE_TOO_SHORT"
	CodeDescriptionMissing  Code = "DESCRIPTION_MISSING"
	CodeStatusInvalid       Code = "STATUS_INVALID"
	CodeMoneyGoalNegative   Code = "MONEY_GOAL_NEGATIVE"
	CodeMoneyPledgedNegative Code = "MONEY_PLEDGED_NEGATIVE"
	CodeLatOutOfRange       Code = "LAT_OUT_OF_RANGE"
	CodeLonOutOfRange       Code = "LON_OUT_OF_RANGE"
	CodeTooManyImages       Code = "TOO_MANY_IMAGES"

	// Task
	CodeSupporterGoalOutOfRange Code = "SUPPORTER_GOAL_OUT_OF_RANGE"

	// Application
	CodeTextMissing    Code = "TEXT_MISSING"
	CodeAlreadyApplied Code = "ALREADY_APPLIED"

	// Image
	CodeExtensionInvalid Code = "EXTENSION_INVALID"

	// Cross-cutting
	CodeReferenceNotFound Code = "REFERENCE_NOT_FOUND"
	CodeSortFieldInvalid  Code = "SORT_FIELD_INVALID"
)
