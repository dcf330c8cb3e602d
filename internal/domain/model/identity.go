package model

type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleOwner, RoleAdmin:
		return true
	default:
		return false
	}
}

// Identity 經過驗證後的操作者
type Identity struct {
	ID          string `json:"id"`
	Role        Role   `json:"role"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}
