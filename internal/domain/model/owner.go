package model

import "gorm.io/gorm"

// Owner 廚房擁有者，一個owner 對應一間廚房
type Owner struct {
	OwnerID      string         `gorm:"primaryKey;type:varchar(64)" json:"owner_id"`
	Name         string         `gorm:"not null;type:varchar(100)" json:"name"`
	KitchenName  string         `gorm:"not null;type:varchar(255)" json:"kitchen_name"`
	Email        string         `gorm:"not null;uniqueIndex;type:varchar(255)" json:"email"`
	PasswordHash string         `gorm:"not null;type:varchar(255)" json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	BaseModel
}

func (o *Owner) Identity() Identity {
	return Identity{
		ID:          o.OwnerID,
		Role:        RoleOwner,
		Email:       o.Email,
		DisplayName: o.KitchenName,
	}
}
