package models

import "time"

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
	RoleViewer  = "viewer"
)

const (
	PermissionRead   = "read"
	PermissionWrite  = "write"
	PermissionDelete = "delete"
	PermissionAdmin  = "admin"
)

type User struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	Department   string     `json:"department,omitempty"`
	Permissions  []string   `json:"permissions"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// RolePermissions lists what each role may do.
var RolePermissions = map[string][]string{
	RoleAdmin:   {PermissionRead, PermissionWrite, PermissionDelete, PermissionAdmin},
	RoleManager: {PermissionRead, PermissionWrite},
	RoleStaff:   {PermissionRead},
	RoleViewer:  {PermissionRead},
}
