package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/justmenoble-ux/mano-web-app/internal/errors"
	"github.com/justmenoble-ux/mano-web-app/internal/models"
)

// householdService manages the per-account household profile.
type householdService struct {
	db *gorm.DB
}

// NewHouseholdService creates a new HouseholdServicer.
func NewHouseholdService(db *gorm.DB) HouseholdServicer {
	return &householdService{db: db}
}

// GetHousehold returns the account's household profile.
func (s *householdService) GetHousehold(accountID string) (*models.Household, error) {
	var household models.Household
	if err := s.db.Where("account_id = ?", accountID).First(&household).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHouseholdNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &household, nil
}

// SaveHousehold creates or replaces the account's household profile.
func (s *householdService) SaveHousehold(accountID, name, member1Name, member2Name string) (*models.Household, error) {
	var household models.Household
	err := s.db.Where("account_id = ?", accountID).First(&household).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		household = models.Household{
			AccountID:   accountID,
			Name:        name,
			Member1Name: member1Name,
			Member2Name: member2Name,
		}
		if err := s.db.Create(&household).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &household, nil
	case err != nil:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{
		"name":         name,
		"member1_name": member1Name,
		"member2_name": member2Name,
	}
	if err := s.db.Model(&household).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &household, nil
}

// UpdateHousehold applies a partial update; nil fields are untouched.
func (s *householdService) UpdateHousehold(accountID string, name, member1Name, member2Name *string) (*models.Household, error) {
	household, err := s.GetHousehold(accountID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != nil {
		updates["name"] = *name
	}
	if member1Name != nil {
		updates["member1_name"] = *member1Name
	}
	if member2Name != nil {
		updates["member2_name"] = *member2Name
	}

	if len(updates) > 0 {
		if err := s.db.Model(household).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return household, nil
}
