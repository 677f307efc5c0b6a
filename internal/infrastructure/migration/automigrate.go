package migration

import (
	"helpdesk/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.SessionModel{},
		&models.OAuthAccountModel{},
		&models.TicketModel{},
		&models.CommentModel{},
		&models.ThreadModel{},
		&models.MessageModel{},
		&models.AgentModel{},
		&models.AttachmentModel{},
		&models.ExternalLinkModel{},
		&models.SyncJobModel{},
		&models.SyncAuditLogModel{},
	}
}
