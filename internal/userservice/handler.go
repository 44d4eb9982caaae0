package userservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/marrowstone/inkpress/internal/common"
)

var (
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
)

func NewUserService(db *sql.DB, secret string, ttl time.Duration) *UserService {
	if ttl <= 0 {
		ttl = SessionTokenTime
	}

	return &UserService{
		m:      newUserModel(db),
		secret: []byte(secret),
		ttl:    ttl,
	}
}

type RegisterUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Country   string `json:"country"`
}

// RegisterUser creates a new user account and issues a session token through
// the same path as login. The plaintext password is never persisted.
func (s *UserService) RegisterUser(ctx context.Context, req *RegisterUserRequest) (*User, string, error) {
	v := common.NewValidator()
	validateName(v, req.FirstName, "first_name")
	validateName(v, req.LastName, "last_name")
	validateEmail(v, req.Email)
	validatePassword(v, req.Password)
	validateCountry(v, req.Country)
	if !v.Valid() {
		return nil, "", v.ValidationError()
	}

	u := User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Country:   req.Country,
		Password:  Password{Plain: req.Password},
	}

	err := u.Password.set(u.Password.Plain)
	if err != nil {
		return nil, "", err
	}

	// The unique constraint on email makes the insert atomic; no separate
	// existence check is needed.
	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, "", err
	}

	token, err := newSessionToken(s.secret, u.ID, s.ttl)
	if err != nil {
		return nil, "", err
	}

	return &u, token, nil
}

// LoginUser verifies the credentials and issues a session token. An unknown
// email yields ErrNotFound and a hash mismatch yields ErrInvalidCredentials so
// the HTTP layer can map them to 404 and 401 respectively.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (string, *User, error) {
	v := common.NewValidator()
	validateEmail(v, email)
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return "", nil, v.ValidationError()
	}

	user, err := s.m.getUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return "", nil, err
	}

	if !ok {
		return "", nil, ErrInvalidCredentials
	}

	token, err := newSessionToken(s.secret, user.ID, s.ttl)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// VerifySessionToken resolves a session token back to its user. The token only
// carries the user ID, so the record is loaded fresh from the database.
func (s *UserService) VerifySessionToken(ctx context.Context, token string) (*User, error) {
	id, err := parseSessionToken(s.secret, token)
	if err != nil {
		return nil, err
	}

	user, err := s.m.getUserByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrInvalidSession
		default:
			return nil, err
		}
	}

	return user, nil
}

// GetUserByID returns the user with the given ID.
func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getUserByID(ctx, id)
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}

// FullName joins the first and last names for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
