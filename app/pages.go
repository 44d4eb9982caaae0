package main

import (
	"errors"
	"net/http"

	"github.com/marrowstone/inkpress/internal/blogservice"
	"github.com/marrowstone/inkpress/internal/common"
	"github.com/marrowstone/inkpress/internal/userservice"
)

// defaultPageLimit is the page size for the browser-facing listing.
const defaultPageLimit = 3

func (app *application) homePage(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "home.html", nil)
}

func (app *application) publishedBlogsPage(w http.ResponseWriter, r *http.Request) {
	blogs, err := app.blogService.GetPublishedBlogs(r.Context())
	if err != nil {
		app.serverErrorPage(w, r, err)
		return
	}

	app.render(w, r, http.StatusOK, "publishedblogs.html", &templateData{Blogs: blogs})
}

func (app *application) blogPage(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundPage(w, r)
		return
	}

	blog, err := app.blogService.GetBlogByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundPage(w, r)
		default:
			app.serverErrorPage(w, r, err)
		}
		return
	}

	author, err := app.userService.GetUserByID(r.Context(), blog.UserID)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrNotFound):
			app.notFoundPage(w, r)
		default:
			app.serverErrorPage(w, r, err)
		}
		return
	}

	app.render(w, r, http.StatusOK, "blog.html", &templateData{
		Blog:          blog,
		Author:        author,
		PublishedDate: blog.PublishedDate(),
	})
}

func (app *application) allBlogsPage(w http.ResponseWriter, r *http.Request) {
	filters, err := readBlogFilters(r, defaultPageLimit)
	if err != nil {
		app.notFoundPage(w, r)
		return
	}

	page, err := app.blogService.GetBlogs(r.Context(), filters)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			app.notFoundPage(w, r)
		default:
			app.serverErrorPage(w, r, err)
		}
		return
	}

	app.render(w, r, http.StatusOK, "allblogs.html", &templateData{
		BlogPage: page,
		Filters:  filters,
	})
}

func (app *application) dashboardPage(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	blogs, err := app.blogService.GetBlogsByUserID(r.Context(), user.ID)
	if err != nil {
		app.serverErrorPage(w, r, err)
		return
	}

	app.render(w, r, http.StatusOK, "dashboard.html", &templateData{Blogs: blogs})
}

func (app *application) createBlogPage(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "createblog.html", nil)
}

func (app *application) updateBlogPage(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundPage(w, r)
		return
	}

	// Editing a post is not reading it, so this fetch leaves the read count
	// alone.
	blog, err := app.blogService.GetBlogForEdit(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundPage(w, r)
		default:
			app.serverErrorPage(w, r, err)
		}
		return
	}

	user := app.getUserContext(r)
	if blog.UserID != user.ID {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	app.render(w, r, http.StatusOK, "updateblog.html", &templateData{Blog: blog})
}

func (app *application) signupPage(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "signup.html", nil)
}

func (app *application) loginPage(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "login.html", nil)
}

func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	app.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
