// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents a community member account.
// PasswordHash is a bcrypt digest and never leaves the server.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"user_id"`

	// Username is the unique public handle chosen at registration.
	Username string `json:"username"`

	// Email is the unique contact address of the account.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the account password.
	PasswordHash string `json:"-"`

	// Timezone is the IANA zone identifier selected by the user.
	Timezone string `json:"timezone"`

	// Active is false until the account has been validated.
	Active bool `json:"active"`

	// Banned marks accounts that are not allowed to sign in.
	Banned bool `json:"banned"`

	// CreatedAt is the timestamp when the account was registered.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Status returns the account state flags used by login checks.
func (u User) Status() UserStatus {
	return UserStatus{Active: u.Active, Banned: u.Banned}
}
