package userservice

import (
	"database/sql"
	"time"
)

const (
	// SessionTokenTime is the lifetime of an issued session token.
	SessionTokenTime time.Duration = 1 * time.Hour
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m      *DBModel
	secret []byte
	ttl    time.Duration
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID             int       `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Password       Password  `json:"-"`
	Country        string    `json:"country"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Version        int       `json:"version"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}
