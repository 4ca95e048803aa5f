package models

type InviteModel struct {
	ID             uint   `gorm:"primaryKey"`
	TokenHash      string `gorm:"uniqueIndex;size:64;not null"`
	Email          string `gorm:"size:255;not null;index"`
	Role           string `gorm:"size:20;not null"`
	OrganizationID uint   `gorm:"not null;index"`
	InvitedBy      uint   `gorm:"not null"`
	ExpiresAt      int64  `gorm:"not null;index"`
	AcceptedAt     *int64
	AcceptedBy     *uint
	CreatedAt      int64 `gorm:"autoCreateTime:milli;not null"`
}

func (InviteModel) TableName() string {
	return "invites"
}
