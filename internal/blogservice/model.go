package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateBlog  = errors.New("blog already exists")
	ErrNotPermitted   = errors.New("blog does not belong to this user")
	ErrUserForeignKey = errors.New("user_id does not exist")
)

const blogColumns = "id, title, description, tag, author, state, user_id, read_count, reading_time, body, created_at, updated_at, published_at, version"

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// ForeignKeyError is a helper function to check if the error is a foreign key constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func scanBlog(row interface{ Scan(...any) error }, blog *Blog) error {
	return row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Description,
		&blog.Tag,
		&blog.Author,
		&blog.State,
		&blog.UserID,
		&blog.ReadCount,
		&blog.ReadingTime,
		&blog.Body,
		&blog.CreatedAt,
		&blog.UpdatedAt,
		&blog.PublishedAt,
		&blog.Version,
	)
}

// exists reports whether a blog with the exact same field tuple already exists
// for the user. The check runs before insert, mirroring the business duplicate
// rule rather than a unique index.
func (m *BlogModel) exists(ctx context.Context, b *Blog) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM blogs
			WHERE title = $1 AND description = $2 AND tag = $3 AND author = $4 AND state = $5 AND body = $6 AND user_id = $7
		)`

	var found bool
	err := m.db.QueryRowContext(ctx, query, b.Title, b.Description, b.Tag, b.Author, b.State, b.Body, b.UserID).Scan(&found)
	if err != nil {
		return false, err
	}

	return found, nil
}

func (m *BlogModel) insert(ctx context.Context, b *Blog) error {
	query := `
		INSERT INTO blogs (title, description, tag, author, state, user_id, reading_time, body, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CASE WHEN $5 = 'published' THEN now() END)
		RETURNING id, read_count, created_at, updated_at, published_at, version`

	args := []any{b.Title, b.Description, b.Tag, b.Author, b.State, b.UserID, b.ReadingTime, b.Body}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.ReadCount, &b.CreatedAt, &b.UpdatedAt, &b.PublishedAt, &b.Version)
	if err != nil {
		switch {
		case ForeignKeyError(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// getBlogAndCountRead fetches a blog by ID and bumps its read count in the
// same statement, so concurrent reads never lose an increment.
func (m *BlogModel) getBlogAndCountRead(ctx context.Context, id int) (*Blog, error) {
	query := `
		UPDATE blogs
		SET read_count = read_count + 1
		WHERE id = $1
		RETURNING ` + blogColumns

	var blog Blog
	err := scanBlog(m.db.QueryRowContext(ctx, query, id), &blog)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

func (m *BlogModel) getBlogByID(ctx context.Context, id int) (*Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE id = $1`

	var blog Blog
	err := scanBlog(m.db.QueryRowContext(ctx, query, id), &blog)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

func (m *BlogModel) getPublished(ctx context.Context) ([]Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs
		WHERE state = 'published'
		ORDER BY published_at DESC`

	return m.queryBlogs(ctx, query)
}

func (m *BlogModel) getBlogsByUserID(ctx context.Context, userID int) ([]Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs
		WHERE user_id = $1
		ORDER BY created_at DESC`

	return m.queryBlogs(ctx, query, userID)
}

// filterClause builds the WHERE clause and argument list for the filter set.
func filterClause(f *Filters) (string, []any) {
	var conds []string
	var args []any

	if f.UserID > 0 {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.Author != "" {
		args = append(args, f.Author)
		conds = append(conds, fmt.Sprintf("author = $%d", len(args)))
	}
	if f.Title != "" {
		args = append(args, f.Title)
		conds = append(conds, fmt.Sprintf("title = $%d", len(args)))
	}
	if len(f.Tags) > 0 {
		args = append(args, pq.Array(f.Tags))
		conds = append(conds, fmt.Sprintf("tag = ANY($%d)", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func (m *BlogModel) countBlogs(ctx context.Context, f *Filters) (int, error) {
	where, args := filterClause(f)

	var total int
	err := m.db.QueryRowContext(ctx, "SELECT count(*) FROM blogs "+where, args...).Scan(&total)
	if err != nil {
		return 0, err
	}

	return total, nil
}

// getPage fetches one page of blogs. The sort field and direction have been
// validated against a whitelist before they reach the query string.
func (m *BlogModel) getPage(ctx context.Context, f *Filters, limit, offset int) ([]Blog, error) {
	where, args := filterClause(f)

	orderField := f.OrderField
	if orderField == "" {
		orderField = "created_at"
	}
	orderDirection := "DESC"
	if f.OrderDirection == "asc" {
		orderDirection = "ASC"
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM blogs
		%s
		ORDER BY %s %s, id ASC
		LIMIT $%d OFFSET $%d`, blogColumns, where, orderField, orderDirection, len(args)-1, len(args))

	return m.queryBlogs(ctx, query, args...)
}

func (m *BlogModel) queryBlogs(ctx context.Context, query string, args ...any) ([]Blog, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []Blog
	for rows.Next() {
		var blog Blog
		if err := scanBlog(rows, &blog); err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

// getOwner returns the owning user ID for a blog.
func (m *BlogModel) getOwner(ctx context.Context, id int) (int, error) {
	var owner int
	err := m.db.QueryRowContext(ctx, "SELECT user_id FROM blogs WHERE id = $1", id).Scan(&owner)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, ErrRecordNotFound
		default:
			return 0, err
		}
	}

	return owner, nil
}

// updateBlog applies a partial update. Nil arguments leave their columns
// untouched; published_at is set the first time the state becomes published
// and never changed afterwards.
func (m *BlogModel) updateBlog(ctx context.Context, id, userID int, title, description, tag, author, state, body *string, readingTime *int) (*Blog, error) {
	query := `
		UPDATE blogs
		SET title = COALESCE($1::text, title),
			description = COALESCE($2::text, description),
			tag = COALESCE($3::text, tag),
			author = COALESCE($4::text, author),
			state = COALESCE($5::text, state),
			body = COALESCE($6::text, body),
			reading_time = COALESCE($7::integer, reading_time),
			published_at = CASE
				WHEN COALESCE($5::text, state) = 'published' AND published_at IS NULL THEN now()
				ELSE published_at
			END,
			updated_at = now(),
			version = version + 1
		WHERE id = $8 AND user_id = $9
		RETURNING ` + blogColumns

	args := []any{title, description, tag, author, state, body, readingTime, id, userID}

	var blog Blog
	err := scanBlog(m.db.QueryRowContext(ctx, query, args...), &blog)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

func (m *BlogModel) deleteBlog(ctx context.Context, id, userID int) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1 AND user_id = $2`

	res, err := m.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}
