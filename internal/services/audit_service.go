package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/justmenoble-ux/mano-web-app/internal/logger"
	"github.com/justmenoble-ux/mano-web-app/internal/models"
)

// auditService records mutating actions. Logging must never fail the
// request, so errors are reported through the logger only.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit entry for a mutating action.
func (s *auditService) Log(accountID, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{}) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Warnw("failed to marshal audit changes",
				"account_id", accountID,
				"action", action,
				"error", err,
			)
		} else {
			changesJSON = string(data)
		}
	}

	entry := models.AuditLog{
		AccountID:    accountID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		logger.Get().Warnw("failed to write audit log",
			"account_id", accountID,
			"action", action,
			"resource_type", resourceType,
			"error", err,
		)
	}
}
