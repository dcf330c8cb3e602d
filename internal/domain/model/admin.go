package model

import "gorm.io/gorm"

type Admin struct {
	AdminID      string         `gorm:"primaryKey;type:varchar(64)" json:"admin_id"`
	Name         string         `gorm:"not null;type:varchar(100)" json:"name"`
	Email        string         `gorm:"not null;uniqueIndex;type:varchar(255)" json:"email"`
	PasswordHash string         `gorm:"not null;type:varchar(255)" json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	BaseModel
}

func (a *Admin) Identity() Identity {
	return Identity{
		ID:          a.AdminID,
		Role:        RoleAdmin,
		Email:       a.Email,
		DisplayName: a.Name,
	}
}
