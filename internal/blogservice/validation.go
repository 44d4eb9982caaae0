package blogservice

import (
	"github.com/marrowstone/inkpress/internal/common"
)

var (
	sortableFields = []string{"created_at", "updated_at", "published_at", "title", "author", "read_count", "reading_time"}
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 3, 100), "title", "must be between 3 and 100 characters long")
}

func validateDescription(v *common.Validator, description string) {
	v.Check(description != "", "description", "must be provided")
	v.Check(v.CheckStringLength(description, 1, 500), "description", "must not be more than 500 characters long")
}

func validateTag(v *common.Validator, tag string) {
	v.Check(tag != "", "tag", "must be provided")
	v.Check(v.CheckStringLength(tag, 1, 50), "tag", "must not be more than 50 characters long")
}

func validateAuthor(v *common.Validator, author string) {
	v.Check(author != "", "author", "must be provided")
	v.Check(v.CheckStringLength(author, 1, 100), "author", "must not be more than 100 characters long")
}

func validateState(v *common.Validator, state BlogState) {
	v.Check(common.PermittedValue(state, StateDraft, StatePublished), "state", "must be either draft or published")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}

func validateFilters(v *common.Validator, f *Filters) {
	if f.OrderField != "" {
		v.Check(common.PermittedValue(f.OrderField, sortableFields...), "orderField", "is not a sortable field")
	}
	if f.OrderDirection != "" {
		v.Check(common.PermittedValue(f.OrderDirection, "asc", "desc"), "orderDirection", "must be either asc or desc")
	}
}
