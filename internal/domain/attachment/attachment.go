package attachment

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// MaxFileSize is the default upload ceiling when config does not override it.
const MaxFileSize = 25 << 20 // 25 MiB

// Attachment is the stored metadata for an uploaded file. The bytes
// themselves live in blob storage under StorageKey.
type Attachment struct {
	id          uint
	ticketID    uint
	uploaderID  uint
	filename    string
	size        int64
	contentType string
	storageKey  string
	sha256      string
	createdAt   time.Time
}

func NewAttachment(ticketID, uploaderID uint, filename string, size int64, contentType, storageKey, sha256 string) (*Attachment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if uploaderID == 0 {
		return nil, fmt.Errorf("uploader ID is required")
	}
	if err := ValidateFilename(filename); err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("file size must be positive")
	}
	if storageKey == "" {
		return nil, fmt.Errorf("storage key is required")
	}
	if len(sha256) != 64 {
		return nil, fmt.Errorf("invalid sha256 digest")
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &Attachment{
		ticketID:    ticketID,
		uploaderID:  uploaderID,
		filename:    filename,
		size:        size,
		contentType: contentType,
		storageKey:  storageKey,
		sha256:      sha256,
		createdAt:   time.Now().UTC(),
	}, nil
}

func ReconstructAttachment(
	id uint,
	ticketID, uploaderID uint,
	filename string,
	size int64,
	contentType, storageKey, sha256 string,
	createdAt time.Time,
) (*Attachment, error) {
	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	return &Attachment{
		id:          id,
		ticketID:    ticketID,
		uploaderID:  uploaderID,
		filename:    filename,
		size:        size,
		contentType: contentType,
		storageKey:  storageKey,
		sha256:      sha256,
		createdAt:   createdAt,
	}, nil
}

// ValidateFilename rejects empty names, path traversal and hidden files.
func ValidateFilename(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename is required")
	}
	if len(filename) > 255 {
		return fmt.Errorf("filename exceeds maximum length of 255 characters")
	}
	if filename != filepath.Base(filename) {
		return fmt.Errorf("filename must not contain path separators")
	}
	if strings.HasPrefix(filename, ".") {
		return fmt.Errorf("hidden filenames are not allowed")
	}
	if strings.ContainsAny(filename, "\x00") {
		return fmt.Errorf("filename contains invalid characters")
	}
	return nil
}

func (a *Attachment) ID() uint {
	return a.id
}

func (a *Attachment) TicketID() uint {
	return a.ticketID
}

func (a *Attachment) UploaderID() uint {
	return a.uploaderID
}

func (a *Attachment) Filename() string {
	return a.filename
}

func (a *Attachment) Size() int64 {
	return a.size
}

func (a *Attachment) ContentType() string {
	return a.contentType
}

func (a *Attachment) StorageKey() string {
	return a.storageKey
}

func (a *Attachment) SHA256() string {
	return a.sha256
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
