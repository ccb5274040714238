package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrNotGuest           = errors.New("account is already registered")
	ErrUnauthorized       = errors.New("unauthorized access")
)

type User struct {
	ID           string    `json:"id" db:"id"`
	Email        *string   `json:"email,omitempty" db:"email"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsGuest      bool      `json:"is_guest" db:"is_guest"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func NewUser(id, email, displayName string) (*User, error) {
	email = strings.TrimSpace(email)

	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	lower := strings.ToLower(email)
	now := time.Now().UTC()
	return &User{
		ID:          id,
		Email:       &lower,
		DisplayName: defaultDisplayName(displayName, lower),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// NewGuestUser creates an anonymous account with no credentials.
func NewGuestUser(id string) *User {
	now := time.Now().UTC()
	return &User{
		ID:          id,
		DisplayName: "Guest",
		IsGuest:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Upgrade turns a guest into a registered account.
func (u *User) Upgrade(email, password, displayName string) error {
	if !u.IsGuest {
		return ErrNotGuest
	}
	email = strings.TrimSpace(email)
	if !isValidEmail(email) {
		return ErrInvalidEmail
	}
	if err := u.SetPassword(password); err != nil {
		return err
	}

	lower := strings.ToLower(email)
	u.Email = &lower
	u.DisplayName = defaultDisplayName(displayName, lower)
	u.IsGuest = false
	return nil
}

func (u *User) SetPassword(plainPassword string) error {
	if utf8.RuneCountInString(plainPassword) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) CheckPassword(plainPassword string) error {
	if u.PasswordHash == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plainPassword)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// FirstName is the greeting name shown on the dashboard.
func (u *User) FirstName() string {
	if f := strings.Fields(u.DisplayName); len(f) > 0 {
		return f[0]
	}
	return "User"
}

func defaultDisplayName(name, email string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return "User"
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
