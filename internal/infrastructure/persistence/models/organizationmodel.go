package models

type OrganizationModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Slug      string `gorm:"uniqueIndex;size:100;not null"`
	Active    bool   `gorm:"not null;default:true"`
	Version   int    `gorm:"not null;default:1"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (OrganizationModel) TableName() string {
	return "organizations"
}
