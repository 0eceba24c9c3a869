package model

import (
	"parking/shared/constant"
	"parking/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldUsername = "username"
	FieldPassword = "password"
	FieldRole     = "role"

	ConstraintUsername = "users_username_key"
)

type Role string

const (
	RoleAdmin Role = constant.RoleAdmin
	RoleUser  Role = constant.RoleUser
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Dashboard is where a caller with this role lands after login or a refused request.
func (r Role) Dashboard() string {
	if r == RoleAdmin {
		return constant.DashboardAdmin
	}

	return constant.DashboardUser
}

type User struct {
	ID       string `db:"id"`
	Username string `db:"username"`
	Password string `db:"password"`
	Role     Role   `db:"role"`
	model.Metadata
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
