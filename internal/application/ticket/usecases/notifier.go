package usecases

import (
	"context"

	"helpdesk/internal/domain/shared/events"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/logger"
)

// EmailSender delivers ticket notification emails.
// Satisfied by email.SMTPEmailService.
type EmailSender interface {
	SendTicketCreatedEmail(to, ticketNumber, title string) error
	SendTicketAssignedEmail(to, ticketNumber, title string) error
	SendCommentAddedEmail(to, ticketNumber, authorName string) error
	SendTicketResolvedEmail(to, ticketNumber, title string) error
}

// TicketNotifier listens for ticket events and mails the people involved.
// Delivery is best effort; a failed email never fails the operation that
// raised the event.
type TicketNotifier struct {
	ticketRepo TicketRepositoryReader
	userRepo   user.Repository
	sender     EmailSender
	logger     logger.Interface
}

// TicketRepositoryReader is the read-only slice of the ticket repository the
// notifier needs.
type TicketRepositoryReader interface {
	GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
}

func NewTicketNotifier(
	ticketRepo TicketRepositoryReader,
	userRepo user.Repository,
	sender EmailSender,
	log logger.Interface,
) *TicketNotifier {
	return &TicketNotifier{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		sender:     sender,
		logger:     log.Named("notifier"),
	}
}

func (n *TicketNotifier) Register(bus events.Subscriber) {
	bus.Subscribe(ticket.EventTicketCreated, n.HandleTicketCreated)
	bus.Subscribe(ticket.EventTicketAssigned, n.HandleTicketAssigned)
	bus.Subscribe(ticket.EventCommentAdded, n.HandleCommentAdded)
	bus.Subscribe(ticket.EventTicketClosed, n.HandleTicketClosed)
}

func (n *TicketNotifier) HandleTicketCreated(event events.Event) error {
	evt, ok := event.(ticket.TicketCreatedEvent)
	if !ok {
		return nil
	}

	creator, err := n.userRepo.GetByID(context.Background(), evt.CreatorID)
	if err != nil || creator == nil {
		n.logger.Warnw("cannot resolve ticket creator for notification",
			"ticket_id", evt.TicketID, "creator_id", evt.CreatorID, "error", err)
		return nil
	}

	if err := n.sender.SendTicketCreatedEmail(creator.Email().String(), evt.Number, evt.Title); err != nil {
		n.logger.Errorw("failed to send ticket created email",
			"ticket_id", evt.TicketID, "error", err)
	}
	return nil
}

func (n *TicketNotifier) HandleTicketAssigned(event events.Event) error {
	evt, ok := event.(ticket.TicketAssignedEvent)
	if !ok {
		return nil
	}

	ctx := context.Background()
	t, err := n.ticketRepo.GetByID(ctx, evt.TicketID)
	if err != nil || t == nil {
		n.logger.Warnw("cannot resolve ticket for assignment notification",
			"ticket_id", evt.TicketID, "error", err)
		return nil
	}

	assignee, err := n.userRepo.GetByID(ctx, evt.AssigneeID)
	if err != nil || assignee == nil {
		n.logger.Warnw("cannot resolve assignee for notification",
			"ticket_id", evt.TicketID, "assignee_id", evt.AssigneeID, "error", err)
		return nil
	}

	if err := n.sender.SendTicketAssignedEmail(assignee.Email().String(), t.Number(), t.Title()); err != nil {
		n.logger.Errorw("failed to send ticket assigned email",
			"ticket_id", evt.TicketID, "error", err)
	}
	return nil
}

// HandleTicketClosed mails the ticket creator that their ticket was
// resolved, unless they closed it themselves.
func (n *TicketNotifier) HandleTicketClosed(event events.Event) error {
	evt, ok := event.(ticket.TicketClosedEvent)
	if !ok {
		return nil
	}

	ctx := context.Background()
	t, err := n.ticketRepo.GetByID(ctx, evt.TicketID)
	if err != nil || t == nil {
		n.logger.Warnw("cannot resolve ticket for close notification",
			"ticket_id", evt.TicketID, "error", err)
		return nil
	}
	if t.CreatorID() == evt.ClosedBy {
		return nil
	}

	creator, err := n.userRepo.GetByID(ctx, t.CreatorID())
	if err != nil || creator == nil {
		return nil
	}

	if err := n.sender.SendTicketResolvedEmail(creator.Email().String(), t.Number(), t.Title()); err != nil {
		n.logger.Errorw("failed to send ticket resolved email",
			"ticket_id", evt.TicketID, "error", err)
	}
	return nil
}

// HandleCommentAdded mails the ticket creator about public comments from
// other people. Internal notes and the creator's own comments are skipped.
func (n *TicketNotifier) HandleCommentAdded(event events.Event) error {
	evt, ok := event.(ticket.CommentAddedEvent)
	if !ok {
		return nil
	}
	if evt.IsInternal {
		return nil
	}

	ctx := context.Background()
	t, err := n.ticketRepo.GetByID(ctx, evt.TicketID)
	if err != nil || t == nil {
		n.logger.Warnw("cannot resolve ticket for comment notification",
			"ticket_id", evt.TicketID, "error", err)
		return nil
	}
	if t.CreatorID() == evt.UserID {
		return nil
	}

	creator, err := n.userRepo.GetByID(ctx, t.CreatorID())
	if err != nil || creator == nil {
		return nil
	}

	authorName := "the support team"
	if author, err := n.userRepo.GetByID(ctx, evt.UserID); err == nil && author != nil {
		authorName = author.Name().String()
	}

	if err := n.sender.SendCommentAddedEmail(creator.Email().String(), t.Number(), authorName); err != nil {
		n.logger.Errorw("failed to send comment email",
			"ticket_id", evt.TicketID, "comment_id", evt.CommentID, "error", err)
	}
	return nil
}
