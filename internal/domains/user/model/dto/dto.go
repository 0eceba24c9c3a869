package dto

import (
	"parking/internal/domains/user/model"
	gDto "parking/shared/dto"
)

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Dashboard string `json:"dashboard"`
	gDto.Metadata
}

func (u *UserResponse) FromModel(m model.User) {
	u.ID = m.ID
	u.Username = m.Username
	u.Role = string(m.Role)
	u.Dashboard = m.Role.Dashboard()
	u.Metadata.FromModel(m.Metadata)
}

type UpdateRoleRequest struct {
	Role model.Role `db:"role" json:"role" validate:"required,oneof=admin user"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"-"`
}
