package models

import "gorm.io/datatypes"

type TicketModel struct {
	ID             uint           `gorm:"primaryKey"`
	Number         string         `gorm:"uniqueIndex;size:50;not null"`
	Title          string         `gorm:"size:200;not null"`
	Description    string         `gorm:"type:text;not null"`
	Category       string         `gorm:"size:50;not null;index"`
	Priority       string         `gorm:"size:20;not null;index"`
	Status         string         `gorm:"size:20;not null;index"`
	CustomerID     uint           `gorm:"not null;index"`
	AssigneeID     *uint          `gorm:"index"`
	OrganizationID uint           `gorm:"not null;index"`
	Tags           datatypes.JSON `gorm:"type:json"`
	SLADueTime     *int64         `gorm:"index"`
	ResolvedTime   *int64
	Version        int   `gorm:"not null;default:1"`
	CreatedAt      int64 `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt      int64 `gorm:"autoUpdateTime:milli;not null"`
	ClosedAt       *int64

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

type MessageModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"not null;index"`
	AuthorID  uint   `gorm:"not null;index"`
	Body      string `gorm:"type:text;not null"`
	Internal  bool   `gorm:"not null;default:false"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (MessageModel) TableName() string {
	return "ticket_messages"
}

type AttachmentModel struct {
	ID          uint   `gorm:"primaryKey"`
	SID         string `gorm:"uniqueIndex;size:32;not null"`
	TicketID    uint   `gorm:"not null;index"`
	MessageID   *uint  `gorm:"index"`
	UploaderID  uint   `gorm:"not null;index"`
	FileName    string `gorm:"size:255;not null"`
	ContentType string `gorm:"size:100"`
	SizeBytes   int64  `gorm:"not null"`
	StorageKey  string `gorm:"size:512;not null"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
}

func (AttachmentModel) TableName() string {
	return "ticket_attachments"
}
