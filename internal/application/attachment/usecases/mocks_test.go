package usecases

import (
	"bytes"
	"context"
	"io"

	"helpdesk/internal/domain/attachment"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/logger"
)

type mockAttachmentRepository struct {
	SaveFunc          func(ctx context.Context, a *attachment.Attachment) error
	DeleteFunc        func(ctx context.Context, attachmentID uint) error
	GetByIDFunc       func(ctx context.Context, attachmentID uint) (*attachment.Attachment, error)
	GetByTicketIDFunc func(ctx context.Context, ticketID uint) ([]*attachment.Attachment, error)
	GetBySHA256Func   func(ctx context.Context, ticketID uint, sha256 string) (*attachment.Attachment, error)
}

func (m *mockAttachmentRepository) Save(ctx context.Context, a *attachment.Attachment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, a)
	}
	return nil
}

func (m *mockAttachmentRepository) Delete(ctx context.Context, attachmentID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, attachmentID)
	}
	return nil
}

func (m *mockAttachmentRepository) GetByID(ctx context.Context, attachmentID uint) (*attachment.Attachment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, attachmentID)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*attachment.Attachment, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) GetBySHA256(ctx context.Context, ticketID uint, sha256 string) (*attachment.Attachment, error) {
	if m.GetBySHA256Func != nil {
		return m.GetBySHA256Func(ctx, ticketID, sha256)
	}
	return nil, nil
}

// mockBlobStore keeps blobs in memory keyed by storage key.
type mockBlobStore struct {
	blobs   map[string][]byte
	saveErr error
}

func newMockBlobStore() *mockBlobStore {
	return &mockBlobStore{blobs: map[string][]byte{}}
}

func (m *mockBlobStore) Save(key string, r io.Reader) (int64, error) {
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.blobs[key] = data
	return int64(len(data)), nil
}

func (m *mockBlobStore) Open(key string) (io.ReadCloser, error) {
	data, ok := m.blobs[key]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *mockBlobStore) Delete(key string) error {
	delete(m.blobs, key)
	return nil
}

type mockTicketRepository struct {
	GetByIDFunc func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error   { return nil }
func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error { return nil }
func (m *mockTicketRepository) Delete(ctx context.Context, ticketID uint) error    { return nil }

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	return nil, 0, nil
}

func (m *mockTicketRepository) GetUserTickets(ctx context.Context, userID uint, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	return nil, 0, nil
}

func (m *mockTicketRepository) GetAssignedTickets(ctx context.Context, assigneeID uint, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	return nil, 0, nil
}

func (m *mockTicketRepository) GetOverdueTickets(ctx context.Context) ([]*ticket.Ticket, error) {
	return nil, nil
}

func (m *mockTicketRepository) Search(ctx context.Context, query string, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	return nil, 0, nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                   {}
func (m *mockLogger) Info(msg string, args ...any)                    {}
func (m *mockLogger) Warn(msg string, args ...any)                    {}
func (m *mockLogger) Error(msg string, args ...any)                   {}
func (m *mockLogger) Fatal(msg string, args ...any)                   {}
func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Named(name string) logger.Interface              { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {}
