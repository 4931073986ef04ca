package controllers

import (
	"gorm.io/gorm"

	"github.com/askloop/askloop/models"
	"github.com/askloop/askloop/utils"
)

// emitNotification writes a notification record as a best-effort side effect.
// It runs outside the triggering mutation's transaction: a failed insert is
// logged and never aborts or rolls back the primary write.
func emitNotification(db *gorm.DB, n models.Notification) {
	if err := db.Create(&n).Error; err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("notification emit failed type=%s recipient=%s err=%v", n.Type, n.UserID, err)
		}
	}
}
