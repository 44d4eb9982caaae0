package blogservice

import (
	"database/sql"
	"time"
)

type BlogState string

const (
	StateDraft     BlogState = "draft"
	StatePublished BlogState = "published"

	// notPublishedPlaceholder is returned for blogs that have no published date.
	notPublishedPlaceholder = "Not published yet"
)

type Blog struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tag         string     `json:"tag"`
	Author      string     `json:"author"`
	State       BlogState  `json:"state"`
	UserID      int        `json:"user_id"`
	ReadCount   int        `json:"read_count"`
	ReadingTime int        `json:"reading_time"`
	// Body is stored in Markdown format.
	Body        string     `json:"body"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Version     int        `json:"version"`
}

// PublishedDate renders the published timestamp as a human readable string, or
// a fixed placeholder for drafts.
func (b *Blog) PublishedDate() string {
	if b.State == StatePublished && b.PublishedAt != nil {
		return b.PublishedAt.Format("Mon Jan 2 2006")
	}
	return notPublishedPlaceholder
}

// BlogPage is one page of a filtered, sorted blog listing.
type BlogPage struct {
	Blogs      []Blog `json:"blogs"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
	TotalBlogs int    `json:"total_blogs"`
}

// Filters selects and orders blogs for a paged listing. Zero values mean the
// filter is not applied.
type Filters struct {
	UserID         int
	Author         string
	Title          string
	Tags           []string
	Page           int
	Limit          int
	OrderField     string
	OrderDirection string
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
}
