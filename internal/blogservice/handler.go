package blogservice

import (
	"context"
	"database/sql"

	"github.com/marrowstone/inkpress/internal/common"
)

// DefaultPageLimit applies when a listing request does not name a limit.
const DefaultPageLimit = 20

func NewBlogService(db *sql.DB) *BlogService {
	return &BlogService{m: newBlogModel(db)}
}

type CreateBlogRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tag         string    `json:"tag"`
	Author      string    `json:"author"`
	State       BlogState `json:"state"`
	Body        string    `json:"body"`
	UserID      int       `json:"user_id"`
}

// CreateBlog creates a new blog post owned by the given user. The state
// defaults to draft and the reading time is derived from the body.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	if req.State == "" {
		req.State = StateDraft
	}

	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateDescription(v, req.Description)
	validateTag(v, req.Tag)
	validateAuthor(v, req.Author)
	validateState(v, req.State)
	validateInt(v, req.UserID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := Blog{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
		Author:      req.Author,
		State:       req.State,
		UserID:      req.UserID,
		Body:        sanitizeMarkdown(req.Body),
	}
	blog.ReadingTime = EstimateReadingTime(blog.Body)

	found, err := s.m.exists(ctx, &blog)
	if err != nil {
		return nil, err
	}
	if found {
		return nil, ErrDuplicateBlog
	}

	if err := s.m.insert(ctx, &blog); err != nil {
		return nil, err
	}

	return &blog, nil
}

// GetBlogByID returns a blog post by its ID and counts the fetch as a read.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogAndCountRead(ctx, id)
}

// GetBlogForEdit returns a blog post without counting the fetch as a read.
func (s *BlogService) GetBlogForEdit(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogByID(ctx, id)
}

// GetPublishedBlogs returns every blog in the published state.
func (s *BlogService) GetPublishedBlogs(ctx context.Context) ([]Blog, error) {
	return s.m.getPublished(ctx)
}

// GetBlogs returns one page of a filtered, sorted listing. The page number is
// clamped to [1, totalPages]; with no matching blogs the page reports 1 and an
// empty slice. Listing a blog does not count as reading it.
func (s *BlogService) GetBlogs(ctx context.Context, f Filters) (*BlogPage, error) {
	v := common.NewValidator()
	validateFilters(v, &f)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if f.Limit < 1 {
		f.Limit = DefaultPageLimit
	}

	total, err := s.m.countBlogs(ctx, &f)
	if err != nil {
		return nil, err
	}

	totalPages := (total + f.Limit - 1) / f.Limit

	page := f.Page
	if page < 1 {
		page = 1
	} else if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	blogs, err := s.m.getPage(ctx, &f, f.Limit, (page-1)*f.Limit)
	if err != nil {
		return nil, err
	}

	return &BlogPage{
		Blogs:      blogs,
		Page:       page,
		Limit:      f.Limit,
		TotalPages: totalPages,
		TotalBlogs: total,
	}, nil
}

// GetBlogsByUserID returns all blog posts owned by a user, newest first.
func (s *BlogService) GetBlogsByUserID(ctx context.Context, userID int) ([]Blog, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogsByUserID(ctx, userID)
}

// UpdateBlogRequest carries a partial update. Nil fields were absent from the
// request; a pointer to an empty string clears the field.
type UpdateBlogRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Tag         *string    `json:"tag"`
	Author      *string    `json:"author"`
	State       *BlogState `json:"state"`
	Body        *string    `json:"body"`
}

// UpdateBlog applies a partial update to a blog owned by userID. The first
// transition into the published state stamps published_at; later updates never
// change it. The reading time is recomputed when the body changes.
func (s *BlogService) UpdateBlog(ctx context.Context, id, userID int, req *UpdateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateInt(v, userID, "user_id")
	if req.Title != nil {
		validateTitle(v, *req.Title)
	}
	if req.Description != nil {
		validateDescription(v, *req.Description)
	}
	if req.Tag != nil {
		validateTag(v, *req.Tag)
	}
	if req.Author != nil {
		validateAuthor(v, *req.Author)
	}
	if req.State != nil {
		validateState(v, *req.State)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	owner, err := s.m.getOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if owner != userID {
		return nil, ErrNotPermitted
	}

	var body *string
	var readingTime *int
	if req.Body != nil {
		clean := sanitizeMarkdown(*req.Body)
		minutes := EstimateReadingTime(clean)
		body = &clean
		readingTime = &minutes
	}

	var state *string
	if req.State != nil {
		st := string(*req.State)
		state = &st
	}

	return s.m.updateBlog(ctx, id, userID, req.Title, req.Description, req.Tag, req.Author, state, body, readingTime)
}

// DeleteBlog removes a blog owned by userID.
func (s *BlogService) DeleteBlog(ctx context.Context, id, userID int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	owner, err := s.m.getOwner(ctx, id)
	if err != nil {
		return err
	}
	if owner != userID {
		return ErrNotPermitted
	}

	return s.m.deleteBlog(ctx, id, userID)
}
