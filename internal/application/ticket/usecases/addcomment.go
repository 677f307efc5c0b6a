package usecases

import (
	"context"
	"time"

	"helpdesk/internal/domain/shared/events"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type AddCommentCommand struct {
	TicketID   uint
	UserID     uint
	Role       string
	Content    string
	IsInternal bool
}

type AddCommentResult struct {
	CommentID uint
	CreatedAt time.Time
}

type AddCommentUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	txMgr       TransactionManager
	eventBus    events.Publisher
	logger      logger.Interface
}

func NewAddCommentUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	txMgr TransactionManager,
	eventBus events.Publisher,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		txMgr:       txMgr,
		eventBus:    eventBus,
		logger:      logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error) {
	uc.logger.Infow("executing add comment use case", "ticket_id", cmd.TicketID, "user_id", cmd.UserID)

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	if !t.CanBeViewedBy(cmd.UserID, cmd.Role) {
		uc.logger.Warnw("user cannot view ticket", "ticket_id", cmd.TicketID, "user_id", cmd.UserID)
		return nil, errors.NewForbiddenError("you do not have access to this ticket")
	}

	if cmd.IsInternal && !authorization.ParseUserRole(cmd.Role).IsSupportStaff() {
		uc.logger.Warnw("user cannot create internal comment", "user_id", cmd.UserID)
		return nil, errors.NewForbiddenError("only support staff can create internal comments")
	}

	comment, err := ticket.NewComment(cmd.TicketID, cmd.UserID, cmd.Content, cmd.IsInternal)
	if err != nil {
		uc.logger.Errorw("failed to create comment", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	// Comment save and ticket update must land together; first-response
	// tracking lives on the ticket row.
	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.commentRepo.Save(txCtx, comment); err != nil {
			uc.logger.Errorw("failed to save comment", "error", err)
			return err
		}

		if err := t.AddComment(comment); err != nil {
			uc.logger.Errorw("failed to add comment to ticket", "error", err)
			return errors.NewValidationError(err.Error())
		}

		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			uc.logger.Errorw("failed to update ticket", "error", err)
			return err
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := uc.eventBus.Publish(ticket.NewCommentAddedEvent(
		t.ID(),
		comment.ID(),
		comment.UserID(),
		comment.IsInternal(),
		comment.Source().String(),
		comment.CreatedAt(),
	)); err != nil {
		uc.logger.Warnw("failed to publish comment added event", "error", err, "comment_id", comment.ID())
	}

	uc.logger.Infow("comment added successfully", "comment_id", comment.ID(), "ticket_id", cmd.TicketID)

	return &AddCommentResult{
		CommentID: comment.ID(),
		CreatedAt: comment.CreatedAt(),
	}, nil
}
