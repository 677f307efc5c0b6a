package thread

import "context"

type ThreadRepository interface {
	Save(ctx context.Context, thread *Thread) error
	Update(ctx context.Context, thread *Thread) error
	Delete(ctx context.Context, threadID uint) error
	GetByID(ctx context.Context, threadID uint) (*Thread, error)
	List(ctx context.Context, filter ThreadFilter) ([]*Thread, int64, error)
	GetByTicketID(ctx context.Context, ticketID uint) ([]*Thread, error)
}

type ThreadFilter struct {
	CreatorID *uint
	AgentID   *uint
	Status    *ThreadStatus
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

type MessageRepository interface {
	Save(ctx context.Context, message *Message) error
	GetByThreadID(ctx context.Context, threadID uint) ([]*Message, error)
	CountByThreadID(ctx context.Context, threadID uint) (int64, error)
}
