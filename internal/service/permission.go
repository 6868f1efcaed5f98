package service

import (
	"slices"

	"complaint-desk/internal/model"
	"complaint-desk/pkg/apierror"
)

// Roles allowed per gated operation.
var (
	CreateComplaintRoles = []model.Role{model.RoleComplainer}
	ReviewComplaintRoles = []model.Role{model.RoleApprover}
	CreateStaffRoles     = []model.Role{model.RoleAdmin}
)

// CheckRole returns a Forbidden APIError unless caller is one of required.
func CheckRole(caller model.Role, required ...model.Role) error {
	switch caller {
	case model.RoleComplainer, model.RoleApprover, model.RoleAdmin:
		if slices.Contains(required, caller) {
			return nil
		}
	}
	return apierror.Forbidden("you do not have permission to access this resource")
}
