package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string {
	return &s
}

func TestHealthCheckHandler(t *testing.T) {
	app, _, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, _, body := ts.get(t, "/healthcheck", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "available", body["status"])
	assert.Equal(t, map[string]any{"environment": "local", "version": "1.0.0"}, body["system_info"])
}

func TestRegisterUserHandler(t *testing.T) {
	app, _, mailer := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	testCases := []struct {
		name       string
		payload    any
		wantStatus int
		wantBody   envelope
	}{
		{
			name: "Valid Request",
			payload: map[string]any{
				"first_name": "Test",
				"last_name":  "User",
				"email":      "testuser@example.com",
				"password":   "Test_1234!",
				"country":    "Nigeria",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "Duplicate Email",
			payload: map[string]any{
				"first_name": "Other",
				"last_name":  "User",
				"email":      "testuser@example.com",
				"password":   "Test_1234!",
				"country":    "Nigeria",
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   envelope{"error": "a user with this email address already exists"},
		},
		{
			name: "Invalid Email",
			payload: map[string]any{
				"first_name": "Test",
				"last_name":  "User",
				"email":      "test",
				"password":   "Test_1234!",
				"country":    "Nigeria",
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   envelope{"error": map[string]any{"email": "must be a valid email address"}},
		},
		{
			name: "Invalid Password",
			payload: map[string]any{
				"first_name": "Test",
				"last_name":  "User",
				"email":      "testuser2@example.com",
				"password":   "password",
				"country":    "Nigeria",
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   envelope{"error": map[string]any{"password": "must be between 8 and 72 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one symbol"}},
		},
		{
			name:       "Empty Payload",
			payload:    map[string]any{},
			wantStatus: http.StatusBadRequest,
			wantBody: envelope{"error": map[string]any{
				"first_name": "must be provided",
				"last_name":  "must be provided",
				"email":      "must be provided",
				"password":   "must be provided",
				"country":    "must be provided",
			}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.post(t, "/api/user/register", tc.payload, nil)

			assert.Equal(t, tc.wantStatus, status)
			if tc.wantBody != nil {
				assert.Equal(t, tc.wantBody, body)
				return
			}

			assert.Equal(t, "user created successfully", body["message"])
			assert.NotEmpty(t, body["token"])

			user, ok := body["user"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "testuser@example.com", user["email"])
			assert.NotContains(t, user, "password")

			// The welcome mail went out to the new address.
			assert.True(t, mailer.Called)
			assert.Equal(t, "testuser@example.com", mailer.Email)
		})
	}
}

func TestLoginUserHandler(t *testing.T) {
	app, _, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	registerTestUser(t, app, "login@example.com")

	testCases := []struct {
		name       string
		payload    any
		wantStatus int
		wantBody   envelope
	}{
		{
			name:       "Valid Credentials",
			payload:    map[string]any{"email": "login@example.com", "password": "Test_1234!"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Unknown Email",
			payload:    map[string]any{"email": "nobody@example.com", "password": "Test_1234!"},
			wantStatus: http.StatusNotFound,
			wantBody:   envelope{"error": "resource not found"},
		},
		{
			name:       "Wrong Password",
			payload:    map[string]any{"email": "login@example.com", "password": "Wrong_1234!"},
			wantStatus: http.StatusUnauthorized,
			wantBody:   envelope{"error": "invalid authentication credentials"},
		},
		{
			name:       "Missing Password",
			payload:    map[string]any{"email": "login@example.com"},
			wantStatus: http.StatusBadRequest,
			wantBody:   envelope{"error": map[string]any{"password": "must be provided"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, header, body := ts.post(t, "/api/auth/login", tc.payload, nil)

			assert.Equal(t, tc.wantStatus, status)
			if tc.wantBody != nil {
				assert.Equal(t, tc.wantBody, body)
				return
			}

			assert.Equal(t, "login successful", body["message"])
			assert.NotEmpty(t, body["token"])
			assert.Contains(t, header.Get("Set-Cookie"), sessionCookieName+"=")
		})
	}
}

func TestCreateBlogHandler(t *testing.T) {
	app, _, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, token := registerTestUser(t, app, "author@example.com")

	payload := map[string]any{
		"title":       "My First Blog",
		"description": "An introduction.",
		"tag":         "tech",
		"author":      "Test User",
		"body":        "Welcome to my blog.",
	}

	t.Run("no token", func(t *testing.T) {
		status, header, body := ts.post(t, "/api/blog", payload, nil)

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Bearer", header.Get("WWW-Authenticate"))
		assert.Equal(t, envelope{"error": "invalid or missing authentication token"}, body)
	})

	t.Run("invalid token", func(t *testing.T) {
		status, _, _ := ts.post(t, "/api/blog", payload, strptr("garbage"))
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("valid request", func(t *testing.T) {
		status, _, body := ts.post(t, "/api/blog", payload, &token)

		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "successfully created", body["message"])

		blog, ok := body["blog"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "My First Blog", blog["title"])
		assert.Equal(t, "draft", blog["state"])
		assert.Equal(t, float64(0), blog["read_count"])
		assert.Equal(t, float64(1), blog["reading_time"])
	})

	t.Run("duplicate blog", func(t *testing.T) {
		status, _, body := ts.post(t, "/api/blog", payload, &token)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, envelope{"error": "the blog already exists"}, body)
	})

	t.Run("missing fields", func(t *testing.T) {
		status, _, body := ts.post(t, "/api/blog", map[string]any{"title": "No Description"}, &token)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, envelope{"error": map[string]any{
			"description": "must be provided",
			"tag":         "must be provided",
			"author":      "must be provided",
		}}, body)
	})
}

func TestGetBlogHandler(t *testing.T) {
	app, _, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, token := registerTestUser(t, app, "reader@example.com")

	status, _, body := ts.post(t, "/api/blog", map[string]any{
		"title":       "Counted Blog",
		"description": "Reads are tracked.",
		"tag":         "tech",
		"author":      "Test User",
		"state":       "published",
		"body":        "short body",
	}, &token)
	require.Equal(t, http.StatusCreated, status)

	blogID := int(body["blog"].(map[string]any)["id"].(float64))

	t.Run("each fetch counts a read", func(t *testing.T) {
		var blog map[string]any
		for i := 1; i <= 3; i++ {
			status, _, body := ts.get(t, fmt.Sprintf("/api/blog/%d", blogID), &token)
			require.Equal(t, http.StatusOK, status)
			blog = body["blog"].(map[string]any)
		}

		assert.Equal(t, float64(3), blog["read_count"])
	})

	t.Run("missing blog", func(t *testing.T) {
		status, _, body := ts.get(t, "/api/blog/999999", &token)

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, envelope{"error": "resource not found"}, body)
	})

	t.Run("invalid id", func(t *testing.T) {
		status, _, _ := ts.get(t, "/api/blog/abc", &token)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestGetBlogsHandler(t *testing.T) {
	app, _, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, token := registerTestUser(t, app, "lister@example.com")

	for i := 1; i <= 5; i++ {
		tag := "hobby"
		if i%2 == 0 {
			tag = "tech"
		}

		status, _, _ := ts.post(t, "/api/blog", map[string]any{
			"title":       fmt.Sprintf("Listing Blog %d", i),
			"description": "For the listing tests.",
			"tag":         tag,
			"author":      "Test User",
			"body":        "",
		}, &token)
		require.Equal(t, http.StatusCreated, status)
	}

	t.Run("paged listing", func(t *testing.T) {
		status, _, body := ts.get(t, "/api/blog?page=2&limit=2", &token)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(2), body["page"])
		assert.Equal(t, float64(2), body["limit"])
		assert.Equal(t, float64(3), body["total_pages"])
		assert.Equal(t, float64(5), body["total_blogs"])
		assert.Len(t, body["blogs"], 2)
	})

	t.Run("page clamped to the last page", func(t *testing.T) {
		status, _, body := ts.get(t, "/api/blog?page=99&limit=2", &token)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(3), body["page"])
		assert.Len(t, body["blogs"], 1)
	})

	t.Run("filter by tag", func(t *testing.T) {
		status, _, body := ts.get(t, "/api/blog?tags=hobby", &token)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(3), body["total_blogs"])
	})

	t.Run("unknown sort field", func(t *testing.T) {
		status, _, body := ts.get(t, "/api/blog?orderField=password", &token)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, envelope{"error": map[string]any{"orderField": "is not a sortable field"}}, body)
	})
}

func TestUpdateBlogHandler(t *testing.T) {
	app, _, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, token := registerTestUser(t, app, "owner@example.com")
	_, otherToken := registerTestUser(t, app, "intruder@example.com")

	status, _, body := ts.post(t, "/api/blog", map[string]any{
		"title":       "Editable Blog",
		"description": "Before the edit.",
		"tag":         "tech",
		"author":      "Test User",
		"body":        "first draft",
	}, &token)
	require.Equal(t, http.StatusCreated, status)

	blogID := int(body["blog"].(map[string]any)["id"].(float64))

	t.Run("partial update", func(t *testing.T) {
		status, _, body := ts.put(t, fmt.Sprintf("/api/blog/update/%d", blogID), &token, map[string]any{"title": "Edited Blog"})

		assert.Equal(t, http.StatusOK, status)
		blog := body["blog"].(map[string]any)
		assert.Equal(t, "Edited Blog", blog["title"])
		assert.Equal(t, "Before the edit.", blog["description"])
		assert.Equal(t, float64(2), blog["version"])
	})

	t.Run("publish stamps the date", func(t *testing.T) {
		status, _, body := ts.put(t, fmt.Sprintf("/api/blog/update/%d", blogID), &token, map[string]any{"state": "published"})

		assert.Equal(t, http.StatusOK, status)
		blog := body["blog"].(map[string]any)
		assert.Equal(t, "published", blog["state"])
		assert.NotEmpty(t, blog["published_at"])
	})

	t.Run("not the owner", func(t *testing.T) {
		status, _, body := ts.put(t, fmt.Sprintf("/api/blog/update/%d", blogID), &otherToken, map[string]any{"title": "Hijacked"})

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, envelope{"error": "unauthorized access"}, body)
	})

	t.Run("missing blog", func(t *testing.T) {
		status, _, _ := ts.put(t, "/api/blog/update/999999", &token, map[string]any{"title": "Ghost"})
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestDeleteBlogHandler(t *testing.T) {
	app, _, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, token := registerTestUser(t, app, "owner@example.com")
	_, otherToken := registerTestUser(t, app, "intruder@example.com")

	status, _, body := ts.post(t, "/api/blog", map[string]any{
		"title":       "Disposable Blog",
		"description": "Soon gone.",
		"tag":         "tech",
		"author":      "Test User",
		"body":        "",
	}, &token)
	require.Equal(t, http.StatusCreated, status)

	blogID := int(body["blog"].(map[string]any)["id"].(float64))

	t.Run("not the owner", func(t *testing.T) {
		status, _, _ := ts.delete(t, fmt.Sprintf("/api/blog/delete/%d", blogID), &otherToken)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("owner deletes", func(t *testing.T) {
		status, _, body := ts.delete(t, fmt.Sprintf("/api/blog/delete/%d", blogID), &token)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, envelope{"message": "blog deleted successfully"}, body)
	})

	t.Run("already deleted", func(t *testing.T) {
		status, _, _ := ts.delete(t, fmt.Sprintf("/api/blog/delete/%d", blogID), &token)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestNotFoundHandler(t *testing.T) {
	app, _, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	t.Run("api routes get a json error", func(t *testing.T) {
		status, _, body := ts.get(t, "/api/nothing", nil)

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, envelope{"error": "resource not found"}, body)
	})

	t.Run("browser routes get the error page", func(t *testing.T) {
		status, _, body := ts.getPage(t, "/nothing", nil)

		assert.Equal(t, http.StatusNotFound, status)
		assert.Contains(t, body, "could not be found")
	})
}
