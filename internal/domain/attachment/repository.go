package attachment

import "context"

type Repository interface {
	Save(ctx context.Context, attachment *Attachment) error
	Delete(ctx context.Context, attachmentID uint) error
	GetByID(ctx context.Context, attachmentID uint) (*Attachment, error)
	GetByTicketID(ctx context.Context, ticketID uint) ([]*Attachment, error)
	GetBySHA256(ctx context.Context, ticketID uint, sha256 string) (*Attachment, error)
}
