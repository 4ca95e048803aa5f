package models

type UserModel struct {
	ID             uint   `gorm:"primaryKey"`
	Email          string `gorm:"uniqueIndex;size:255;not null"`
	Name           string `gorm:"size:100;not null"`
	PasswordHash   string `gorm:"size:255;not null"`
	Role           string `gorm:"size:20;not null;index"`
	OrganizationID uint   `gorm:"not null;index"`
	Active         bool   `gorm:"not null;default:true"`
	LastLoginAt    *int64
	Version        int   `gorm:"not null;default:1"`
	CreatedAt      int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt      int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (UserModel) TableName() string {
	return "users"
}
