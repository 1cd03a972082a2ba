package models

import (
	"time"
)

type User struct {
	ID             int64     `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	Name           string    `json:"name" db:"name"`
	ProfilePicture string    `json:"profile_picture" db:"profile_picture"`
	Status         string    `json:"status" db:"status"`
	LastSeen       time.Time `json:"last_seen" db:"last_seen"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

// Contact is a directory entry enriched with conversation state for the
// contact list screen.
type Contact struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profile_picture"`
	Status         string    `json:"status"`
	LastSeen       time.Time `json:"last_seen"`
	UnreadCount    int       `json:"unread_count"`
	LastMessage    *Message  `json:"last_message,omitempty"`
}

func (u *User) IsOnline() bool {
	return u.Status == "online"
}
