package model

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=120"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"required,min=2,max=20"`
	LastName  string `json:"last_name" validate:"required,min=2,max=20"`
	Phone     string `json:"phone" validate:"required,min=10,max=13"`
}

type CreateStaffRequest struct {
	Email       string `json:"email" validate:"required,email,max=120"`
	Password    string `json:"password" validate:"required"`
	FirstName   string `json:"first_name" validate:"required,min=2,max=20"`
	LastName    string `json:"last_name" validate:"required,min=2,max=20"`
	Phone       string `json:"phone" validate:"omitempty,min=10,max=13"`
	Role        string `json:"role" validate:"required,oneof=admin approver"`
	Certificate string `json:"certificate" validate:"required_if=Role approver,omitempty,url,max=255"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,nefield=OldPassword"`
}

// CreateComplaintRequest takes either a photo_url or an inline base64
// photo that is uploaded on the complainer's behalf.
type CreateComplaintRequest struct {
	Title          string  `json:"title" validate:"required,max=100"`
	Description    string  `json:"description" validate:"required"`
	PhotoURL       string  `json:"photo_url" validate:"required_without=Photo,omitempty,url,max=255"`
	Photo          string  `json:"photo" validate:"required_without=PhotoURL,omitempty,base64"`
	PhotoExtension string  `json:"photo_extension" validate:"required_with=Photo,omitempty,alphanum,max=5"`
	Amount         float64 `json:"amount" validate:"gt=0"`
	// Status is accepted but never honoured; new complaints start pending.
	Status string `json:"status,omitempty"`
}
