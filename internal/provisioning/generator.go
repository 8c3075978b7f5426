package provisioning

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rangbot-io/rangbotgo/internal/models"
	"gorm.io/gorm"
)

// serialBase is the constant offset added to a sequence number to form a
// device serial number: sequence 1 -> RBT-SN-01-88401.
const serialBase = 88400

// Generator produces member identifiers and device serial sequences by
// scanning the last committed rows. It takes the caller's transaction and
// performs no locking of its own; uniqueness is ultimately enforced by the
// unique indexes on members.member_id and rangbot_devices.serial_number.
type Generator struct{}

// NextMemberID returns the next candidate member identifier for the current
// calendar year, format MBR-YYYY-NNNNN. Missing data or an unparseable
// predecessor falls back to sequence 1. The caller must still verify
// uniqueness before committing.
func (Generator) NextMemberID(tx *gorm.DB) string {
	year := time.Now().UTC().Year()
	prefix := fmt.Sprintf("MBR-%d", year)

	var last models.PurchaseOrder
	next := 1
	err := tx.
		Where("member_id IS NOT NULL AND member_id LIKE ?", prefix+"%").
		Order("id DESC").
		First(&last).Error
	if err == nil && last.MemberID != nil {
		if n, ok := trailingNumber(*last.MemberID); ok {
			next = n + 1
		}
	}

	return fmt.Sprintf("%s-%05d", prefix, next)
}

// NextSerialSequence returns the sequence number for the next device to be
// created, derived from the most recently created device row. Deriving from
// the last row (rather than keeping a stored counter) means an aborted
// verification leaves no gap in the serial space.
func (Generator) NextSerialSequence(tx *gorm.DB) int {
	var last models.RangBotDevice
	// Unscoped: a soft-deleted device still owns its serial number forever
	err := tx.Unscoped().Order("id DESC").First(&last).Error
	if err != nil {
		return 1
	}

	parts := strings.Split(last.SerialNumber, "-")
	if len(parts) < 4 {
		return 1
	}
	n, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 1
	}
	return n - serialBase + 1
}

// FormatSerial formats a sequence number as a device serial, e.g.
// FormatSerial(1) == "RBT-SN-01-88401". No zero padding; the number grows.
func FormatSerial(sequence int) string {
	return fmt.Sprintf("RBT-SN-01-%d", serialBase+sequence)
}

// trailingNumber parses the numeric segment after the last '-'
func trailingNumber(s string) (int, bool) {
	idx := strings.LastIndex(s, "-")
	if idx < 0 || idx == len(s)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(s[idx+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}
