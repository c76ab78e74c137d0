package models

import "time"

// Roles a session user may hold.
const (
	RoleCustomer = "customer"
	RoleBusiness = "business"
)

// User represents the authenticated session user as returned by the upstream
// profile and login endpoints. It is owned by the auth service and persisted
// alongside the bearer token for session resumption.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PhoneNumber  string    `json:"phoneNumber,omitempty"`
	Location     string    `json:"location,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// ProfileUpdate carries the changed profile fields submitted by the user.
// Nil pointers mean "unchanged".
type ProfileUpdate struct {
	Name        *string `json:"name,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Location    *string `json:"location,omitempty"`
}
