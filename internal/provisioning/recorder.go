package provisioning

import (
	"encoding/json"
	"fmt"

	"github.com/rangbot-io/rangbotgo/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Entry describes one activity log record to append
type Entry struct {
	Action      models.ActionType
	Description string
	PerformedBy *uint
	OrderID     *uint
	MemberID    *uint
	DeviceID    *uint
	Metadata    map[string]interface{}
}

// Recorder appends immutable activity log rows. Writes share the caller's
// transaction: a failed log write aborts the business action with it, which
// is the strict-audit guarantee the admin dashboard relies on.
type Recorder struct{}

// Record appends one activity log entry within tx
func (Recorder) Record(tx *gorm.DB, e Entry) error {
	if !models.KnownActionTypes[e.Action] {
		return fmt.Errorf("unknown action type %q", e.Action)
	}

	var meta datatypes.JSON
	if len(e.Metadata) > 0 {
		raw, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("marshal activity metadata: %w", err)
		}
		meta = datatypes.JSON(raw)
	}

	entry := models.ActivityLog{
		ActionType:      e.Action,
		Description:     e.Description,
		PerformedByID:   e.PerformedBy,
		RelatedOrderID:  e.OrderID,
		RelatedMemberID: e.MemberID,
		RelatedDeviceID: e.DeviceID,
		Metadata:        meta,
	}

	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("append activity log: %w", err)
	}
	return nil
}
