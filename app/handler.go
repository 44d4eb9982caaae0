package main

import (
	"errors"
	"net/http"

	"github.com/marrowstone/inkpress/internal/blogservice"
	"github.com/marrowstone/inkpress/internal/common"
	"github.com/marrowstone/inkpress/internal/userservice"
)

type registerUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Country   string `json:"country"`
}

func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var input registerUserRequest

	// Parse the request body
	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	// Call the user service
	user, token, err := app.userService.RegisterUser(r.Context(), &userservice.RegisterUserRequest{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
		Country:   input.Country,
	})
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrDuplicateEmail):
			app.duplicateRecordErrorResponse(w, r, "a user with this email address already exists")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// Best effort; a mail failure is logged inside the service and must not
	// undo the registration.
	app.mailService.SendWelcomeEmail(user.Email, user.FirstName)

	// Return the response
	err = app.writeJSON(w, http.StatusCreated, envelope{"message": "user created successfully", "user": user, "token": token}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type loginUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (app *application) loginUserHandler(w http.ResponseWriter, r *http.Request) {
	var input loginUserRequest

	// Parse the request body
	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	// Call the user service
	token, user, err := app.userService.LoginUser(r.Context(), input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.Is(err, userservice.ErrInvalidCredentials):
			app.invalidCredentialsErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.setSessionCookie(w, token)

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "login successful", "token": token, "user": user}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type createBlogRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
	Author      string `json:"author"`
	State       string `json:"state"`
	Body        string `json:"body"`
}

func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input createBlogRequest

	// Parse the request body
	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	// get the user from the context
	user := app.getUserContext(r)

	req := &blogservice.CreateBlogRequest{
		Title:       input.Title,
		Description: input.Description,
		Tag:         input.Tag,
		Author:      input.Author,
		State:       blogservice.BlogState(input.State),
		Body:        input.Body,
		UserID:      user.ID,
	}

	// Call the blog service
	blog, err := app.blogService.CreateBlog(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrDuplicateBlog):
			app.duplicateRecordErrorResponse(w, r, "the blog already exists")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		case errors.Is(err, blogservice.ErrUserForeignKey):
			app.unAuthorizedErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"message": "successfully created", "blog": blog}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blog, err := app.blogService.GetBlogByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blog": blog, "published_date": blog.PublishedDate()}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// readBlogFilters builds the listing filter set from the query string, shared
// by the API listing and the allblogs page.
func readBlogFilters(r *http.Request, defaultLimit int) (blogservice.Filters, error) {
	qs := r.URL.Query()

	var f blogservice.Filters
	var err error

	f.UserID, err = readInt(qs, "user_id", 0)
	if err != nil {
		return f, err
	}
	f.Page, err = readInt(qs, "page", 1)
	if err != nil {
		return f, err
	}
	f.Limit, err = readInt(qs, "limit", defaultLimit)
	if err != nil {
		return f, err
	}

	f.Author = readString(qs, "author", "")
	f.Title = readString(qs, "title", "")
	f.Tags = readCSV(qs, "tags")
	f.OrderField = readString(qs, "orderField", "")
	f.OrderDirection = readString(qs, "orderDirection", "")

	return f, nil
}

func (app *application) getBlogsHandler(w http.ResponseWriter, r *http.Request) {
	filters, err := readBlogFilters(r, blogservice.DefaultPageLimit)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	page, err := app.blogService.GetBlogs(r.Context(), filters)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	env := envelope{
		"blogs":       page.Blogs,
		"page":        page.Page,
		"limit":       page.Limit,
		"total_pages": page.TotalPages,
		"total_blogs": page.TotalBlogs,
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) updateBlogHandler(w http.ResponseWriter, r *http.Request) {
	// id is a URL parameter
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input blogservice.UpdateBlogRequest

	// Parse the request body
	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	// Call the blog service
	blog, err := app.blogService.UpdateBlog(r.Context(), id, user.ID, &input)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.Is(err, blogservice.ErrNotPermitted):
			app.unAuthorizedErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "blog updated successfully", "blog": blog}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	// Call the blog service
	err = app.blogService.DeleteBlog(r.Context(), id, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.Is(err, blogservice.ErrNotPermitted):
			app.unAuthorizedErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "blog deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
