package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/id"
)

// ParseSIDParam parses and validates a Stripe-style prefixed ID from a URL path parameter.
// paramName is the Gin route parameter name (e.g., "id", "ticket_id").
// prefix is the expected SID prefix (e.g., id.PrefixTicket).
// entityName is used in error messages (e.g., "ticket", "thread message").
func ParseSIDParam(c *gin.Context, paramName, prefix, entityName string) (string, error) {
	sid := c.Param(paramName)
	if sid == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}

	if err := id.ValidatePrefix(sid, prefix); err != nil {
		return "", errors.NewValidationError(
			fmt.Sprintf("invalid %s ID format, expected %s_xxxxx", entityName, prefix),
		)
	}

	return sid, nil
}
