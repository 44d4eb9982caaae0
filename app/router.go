package main

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundHandler)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthCheckHandler)

	// JSON API
	router.HandlerFunc(http.MethodPost, "/api/user/register", app.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/api/auth/login", app.loginUserHandler)
	router.HandlerFunc(http.MethodPost, "/api/blog", app.requireAuthUser(app.createBlogHandler))
	router.HandlerFunc(http.MethodGet, "/api/blog", app.requireAuthUser(app.getBlogsHandler))
	router.HandlerFunc(http.MethodGet, "/api/blog/:id", app.requireAuthUser(app.getBlogHandler))
	router.HandlerFunc(http.MethodPut, "/api/blog/update/:id", app.requireAuthUser(app.updateBlogHandler))
	router.HandlerFunc(http.MethodDelete, "/api/blog/delete/:id", app.requireAuthUser(app.deleteBlogHandler))

	// browser pages
	router.HandlerFunc(http.MethodGet, "/", app.homePage)
	router.HandlerFunc(http.MethodGet, "/publishedblogs", app.publishedBlogsPage)
	router.HandlerFunc(http.MethodGet, "/blog/:id", app.blogPage)
	router.HandlerFunc(http.MethodGet, "/allblogs", app.allBlogsPage)
	router.HandlerFunc(http.MethodGet, "/dashboard", app.requireSession(app.dashboardPage))
	router.HandlerFunc(http.MethodGet, "/create", app.requireSession(app.createBlogPage))
	router.HandlerFunc(http.MethodGet, "/update/:id", app.requireSession(app.updateBlogPage))
	router.HandlerFunc(http.MethodGet, "/signup", app.signupPage)
	router.HandlerFunc(http.MethodGet, "/login", app.loginPage)
	router.HandlerFunc(http.MethodGet, "/logout", app.logoutHandler)

	return app.recoverPanic(app.rateLimit(app.logRequest(app.authenticate(router))))
}

// notFoundHandler keeps JSON errors on the API surface and rendered error
// pages everywhere else.
func (app *application) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		app.notFoundErrorResponse(w, r)
		return
	}
	app.notFoundPage(w, r)
}
