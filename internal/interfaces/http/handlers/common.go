package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/shared/constants"
	"helpdesk/internal/shared/errors"
)

// principal is the authenticated caller as resolved by the auth middleware.
type principal struct {
	UserID    uint
	UserUUID  string
	SessionID string
	Role      string
}

func currentPrincipal(c *gin.Context) (principal, error) {
	userID, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return principal{}, errors.NewUnauthorizedError("user not authenticated")
	}
	uid, ok := userID.(uint)
	if !ok || uid == 0 {
		return principal{}, errors.NewUnauthorizedError("user not authenticated")
	}

	return principal{
		UserID:    uid,
		UserUUID:  c.GetString("user_uuid"),
		SessionID: c.GetString(constants.ContextKeySessionID),
		Role:      c.GetString(constants.ContextKeyUserRole),
	}, nil
}

// parseUintParam parses a numeric path parameter like :id.
func parseUintParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return 0, errors.NewValidationError("invalid " + name)
	}
	return uint(n), nil
}
