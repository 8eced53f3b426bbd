package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleArtist = "artist"
	RoleClient = "client"
)

const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("role not allowed")
var ErrDuplicateEmail = errors.New("email already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrAccountInactive = errors.New("account inactive")
var ErrInvalidUserStatus = errors.New("invalid user status")

// SelfRegisterRole reports whether a role may be chosen at registration.
// Admin accounts are provisioned out of band, never self-registered.
func SelfRegisterRole(role string) bool {
	return role == RoleClient || role == RoleArtist
}

// UploaderRole reports whether a role may own content.
func UploaderRole(role string) bool {
	return role == RoleArtist || role == RoleAdmin
}

// ValidUserStatus reports whether s is an admin-settable account status.
func ValidUserStatus(s string) bool {
	return s == UserStatusActive || s == UserStatusInactive
}

// Profile holds the user-editable presentation fields.
type Profile struct {
	FullName       string `json:"full_name,omitempty" bson:"full_name,omitempty"`
	Phone          string `json:"phone,omitempty" bson:"phone,omitempty"`
	Bio            string `json:"bio,omitempty" bson:"bio,omitempty"`
	Website        string `json:"website,omitempty" bson:"website,omitempty"`
	Instagram      string `json:"instagram,omitempty" bson:"instagram,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty" bson:"profile_picture,omitempty"`
}

// User models an account in the platform.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Public returns a copy safe to hand to callers: same fields minus the
// password hash, which never leaves the service layer.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone
}
