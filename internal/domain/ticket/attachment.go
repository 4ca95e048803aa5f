package ticket

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"autocrm/internal/shared/biztime"
)

const maxAttachmentSize = 25 << 20 // 25 MiB

var allowedAttachmentExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".pdf":  true,
	".txt":  true,
	".log":  true,
	".csv":  true,
	".json": true,
	".zip":  true,
}

// Attachment records a file uploaded against a ticket. The blob itself lives in
// the storage backend under StorageKey; the entity only carries metadata.
type Attachment struct {
	id          uint
	sid         string
	ticketID    uint
	messageID   *uint
	uploaderID  uint
	fileName    string
	contentType string
	sizeBytes   int64
	storageKey  string
	createdAt   time.Time
}

func NewAttachment(
	sid string,
	ticketID uint,
	messageID *uint,
	uploaderID uint,
	fileName string,
	contentType string,
	sizeBytes int64,
	storageKey string,
) (*Attachment, error) {
	if len(sid) == 0 {
		return nil, fmt.Errorf("attachment SID is required")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if uploaderID == 0 {
		return nil, fmt.Errorf("uploader ID is required")
	}
	if len(fileName) == 0 {
		return nil, fmt.Errorf("file name is required")
	}
	if sizeBytes <= 0 {
		return nil, fmt.Errorf("file size must be positive")
	}
	if sizeBytes > maxAttachmentSize {
		return nil, fmt.Errorf("file size exceeds maximum of %d bytes", maxAttachmentSize)
	}
	if len(storageKey) == 0 {
		return nil, fmt.Errorf("storage key is required")
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedAttachmentExtensions[ext] {
		return nil, fmt.Errorf("file type %s is not allowed", ext)
	}

	return &Attachment{
		sid:         sid,
		ticketID:    ticketID,
		messageID:   messageID,
		uploaderID:  uploaderID,
		fileName:    fileName,
		contentType: contentType,
		sizeBytes:   sizeBytes,
		storageKey:  storageKey,
		createdAt:   biztime.NowUTC(),
	}, nil
}

func ReconstructAttachment(
	id uint,
	sid string,
	ticketID uint,
	messageID *uint,
	uploaderID uint,
	fileName string,
	contentType string,
	sizeBytes int64,
	storageKey string,
	createdAt time.Time,
) (*Attachment, error) {
	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	if len(sid) == 0 {
		return nil, fmt.Errorf("attachment SID is required")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	return &Attachment{
		id:          id,
		sid:         sid,
		ticketID:    ticketID,
		messageID:   messageID,
		uploaderID:  uploaderID,
		fileName:    fileName,
		contentType: contentType,
		sizeBytes:   sizeBytes,
		storageKey:  storageKey,
		createdAt:   createdAt,
	}, nil
}

func (a *Attachment) ID() uint {
	return a.id
}

func (a *Attachment) SID() string {
	return a.sid
}

func (a *Attachment) TicketID() uint {
	return a.ticketID
}

func (a *Attachment) MessageID() *uint {
	return a.messageID
}

func (a *Attachment) UploaderID() uint {
	return a.uploaderID
}

func (a *Attachment) FileName() string {
	return a.fileName
}

func (a *Attachment) ContentType() string {
	return a.contentType
}

func (a *Attachment) SizeBytes() int64 {
	return a.sizeBytes
}

func (a *Attachment) StorageKey() string {
	return a.storageKey
}

func (a *Attachment) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Attachment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("attachment ID cannot be zero")
	}
	a.id = id
	return nil
}
