package models

// Role is the account role of a user.
type Role string

const (
	RoleSupporter Role = "SUPPORTER"
	RoleInitiator Role = "INITIATOR"
	RoleAdmin     Role = "ADMIN"
)

// Roles lists every valid role. Read-only after init.
var Roles = []Role{RoleSupporter, RoleInitiator, RoleAdmin}

func (r Role) Valid() bool {
	switch r {
	case RoleSupporter, RoleInitiator, RoleAdmin:
		return true
	}
	return false
}

// Gender of a user profile.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ProjectStatus is the publication state of a project. New projects start in
// NEEDS_VERIFICATION and only admins move them out of it.
type ProjectStatus string

const (
	StatusNeedsVerification ProjectStatus = "NEEDS_VERIFICATION"
	StatusUnlisted          ProjectStatus = "UNLISTED"
	StatusPublic            ProjectStatus = "PUBLIC"
)

var ProjectStatuses = []ProjectStatus{StatusNeedsVerification, StatusUnlisted, StatusPublic}

func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusNeedsVerification, StatusUnlisted, StatusPublic:
		return true
	}
	return false
}
