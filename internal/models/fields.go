package models

// Sortable fields per entity, mapping the public field name to its column.
// These are closed sets; a sort request outside of them is rejected before
// the query is built. All of them include id and the two timestamps.

var UserSortFields = map[string]string{
	"id":        "id",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"fullName":  "full_name",
	"mail":      "mail",
	"role":      "role",
}

var ProjectSortFields = map[string]string{
	"id":           "id",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
	"title":        "title",
	"status":       "status",
	"moneyGoal":    "money_goal",
	"moneyPledged": "money_pledged",
}

var TaskSortFields = map[string]string{
	"id":            "id",
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
	"title":         "title",
	"supporterGoal": "supporter_goal",
}

var ApplicationSortFields = map[string]string{
	"id":        "id",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"accepted":  "accepted",
}

var CategorySortFields = map[string]string{
	"id":        "id",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
}

var ImageSortFields = map[string]string{
	"id":        "id",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"extension": "extension",
}
