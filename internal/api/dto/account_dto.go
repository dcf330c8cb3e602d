package dto

import "github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"

type RegisterCustomerDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type RegisterOwnerDTO struct {
	Name            string `json:"name"`
	KitchenName     string `json:"kitchen_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type RegisterAdminDTO struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"` //密碼明文
}

// TokenInfo 表示令牌資訊
type TokenInfo struct {
	Value     string `json:"value"`
	ExpiresIn int    `json:"expires_in"`
}

type LoginResponse struct {
	AccessToken TokenInfo      `json:"access_token"`
	Identity    model.Identity `json:"identity"`
}
