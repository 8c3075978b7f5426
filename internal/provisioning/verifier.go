package provisioning

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rangbot-io/rangbotgo/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// memberIDAttempts bounds the duplicate-regeneration loop during member
// identifier assignment.
const memberIDAttempts = 3

// Service runs the order verification and rejection workflows. Each call is
// one all-or-nothing database transaction; the order row is locked with
// SELECT ... FOR UPDATE so a concurrent second verifier blocks on the lock
// and then fails the pending-status guard cleanly.
type Service struct {
	db  *gorm.DB
	gen Generator
	rec Recorder
}

// NewService creates a provisioning service on top of db
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// VerifyResult reports what a successful verification created
type VerifyResult struct {
	Order     *models.PurchaseOrder  `json:"order"`
	Member    *models.Member         `json:"member"`
	Devices   []models.RangBotDevice `json:"devices"`
	NewMember bool                   `json:"newMember"`
}

// Verify accepts a pending purchase order: provisions a member identifier
// (or reuses the referenced member for reorders), creates one device row per
// ordered unit with contiguous serial numbers, flips the order to verified
// and appends the audit trail. Fails without side effects on any guard
// violation.
func (s *Service) Verify(orderID uint, staffID uint) (*VerifyResult, error) {
	var result *VerifyResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.PurchaseOrder
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Msg: fmt.Sprintf("order #%d not found", orderID)}
			}
			return err
		}

		if order.Status != models.OrderStatusPending {
			return &ConflictError{Msg: "order has already been verified or rejected"}
		}
		if order.TotalUnits() == 0 {
			return &ValidationError{Msg: "order contains no units"}
		}

		var member models.Member
		newMember := false

		if order.IsReorder && order.OriginalMemberID != nil && *order.OriginalMemberID != "" {
			// Reorder: attach new devices to the existing member
			if err := tx.Where("member_id = ?", *order.OriginalMemberID).First(&member).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Msg: fmt.Sprintf("original member %s not found", *order.OriginalMemberID)}
				}
				return err
			}
		} else {
			memberID, err := s.assignMemberID(tx)
			if err != nil {
				return err
			}

			member = models.Member{
				MemberID:        memberID,
				FullName:        order.CustomerName,
				Email:           order.CustomerEmail,
				Phone:           order.CustomerPhone,
				PurchaseOrderID: &order.ID,
				IsRegistered:    false,
				IsActive:        true,
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
			newMember = true
			order.MemberID = &member.MemberID
		}

		devices, err := s.createDevices(tx, &order, &member)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		order.Status = models.OrderStatusVerified
		order.VerifiedAt = &now
		order.VerifiedByID = &staffID
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		if err := s.recordVerification(tx, &order, &member, devices, newMember, staffID); err != nil {
			return err
		}

		result = &VerifyResult{
			Order:     &order,
			Member:    &member,
			Devices:   devices,
			NewMember: newMember,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// assignMemberID generates a candidate identifier and re-checks uniqueness,
// retrying a bounded number of times before giving up.
func (s *Service) assignMemberID(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < memberIDAttempts; attempt++ {
		candidate := s.gen.NextMemberID(tx)

		var count int64
		if err := tx.Model(&models.Member{}).Where("member_id = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique member id after %d attempts", memberIDAttempts)
}

// createDevices creates one device row per ordered unit, basic units first,
// with one contiguous serial sequence across the whole batch.
func (s *Service) createDevices(tx *gorm.DB, order *models.PurchaseOrder, member *models.Member) ([]models.RangBotDevice, error) {
	sequence := s.gen.NextSerialSequence(tx)
	devices := make([]models.RangBotDevice, 0, order.TotalUnits())

	create := func(name string) error {
		device := models.RangBotDevice{
			SerialNumber:    FormatSerial(sequence),
			OwnerID:         member.ID,
			PurchaseOrderID: &order.ID,
			DeviceName:      name,
			Status:          models.DeviceStatusOffline,
			IsActive:        true,
		}
		if err := tx.Create(&device).Error; err != nil {
			return err
		}
		devices = append(devices, device)
		sequence++
		return nil
	}

	for i := 1; i <= order.QtyBasic; i++ {
		if err := create(fmt.Sprintf("RangBot Basic %d", i)); err != nil {
			return nil, err
		}
	}
	for i := 1; i <= order.QtyProfessional; i++ {
		if err := create(fmt.Sprintf("RangBot Pro %d", i)); err != nil {
			return nil, err
		}
	}

	return devices, nil
}

func (s *Service) recordVerification(tx *gorm.DB, order *models.PurchaseOrder, member *models.Member, devices []models.RangBotDevice, newMember bool, staffID uint) error {
	summary := Entry{
		Action: models.ActionOrderVerified,
		Description: fmt.Sprintf("Order #%d verified: member %s, %d device(s) created (basic: %d, pro: %d)",
			order.ID, member.MemberID, len(devices), order.QtyBasic, order.QtyProfessional),
		PerformedBy: &staffID,
		OrderID:     &order.ID,
		MemberID:    &member.ID,
		Metadata: map[string]interface{}{
			"memberId":  member.MemberID,
			"isReorder": order.IsReorder,
			"qtyBasic":  order.QtyBasic,
			"qtyPro":    order.QtyProfessional,
		},
	}
	if err := s.rec.Record(tx, summary); err != nil {
		return err
	}

	if newMember {
		err := s.rec.Record(tx, Entry{
			Action:      models.ActionMemberCreated,
			Description: fmt.Sprintf("Member %s created for %s", member.MemberID, member.FullName),
			PerformedBy: &staffID,
			OrderID:     &order.ID,
			MemberID:    &member.ID,
		})
		if err != nil {
			return err
		}
	}

	for i := range devices {
		device := &devices[i]
		err := s.rec.Record(tx, Entry{
			Action:      models.ActionSerialCreated,
			Description: fmt.Sprintf("Serial %s assigned to member %s", device.SerialNumber, member.MemberID),
			PerformedBy: &staffID,
			OrderID:     &order.ID,
			MemberID:    &member.ID,
			DeviceID:    &device.ID,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Reject declines a pending purchase order. The optional reason is prepended
// to the order notes. No member or device side effects.
func (s *Service) Reject(orderID uint, staffID uint, reason string) (*models.PurchaseOrder, error) {
	var rejected *models.PurchaseOrder

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.PurchaseOrder
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Msg: fmt.Sprintf("order #%d not found", orderID)}
			}
			return err
		}

		if order.Status != models.OrderStatusPending {
			return &ConflictError{Msg: "order has already been verified or rejected"}
		}

		now := time.Now().UTC()
		order.Status = models.OrderStatusRejected
		order.VerifiedAt = &now
		order.VerifiedByID = &staffID
		if reason = strings.TrimSpace(reason); reason != "" {
			order.Notes = fmt.Sprintf("[REJECTED] %s\n\n%s", reason, order.Notes)
		}
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		err := s.rec.Record(tx, Entry{
			Action:      models.ActionOrderRejected,
			Description: fmt.Sprintf("Order #%d rejected", order.ID),
			PerformedBy: &staffID,
			OrderID:     &order.ID,
			Metadata:    map[string]interface{}{"reason": reason},
		})
		if err != nil {
			return err
		}

		rejected = &order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rejected, nil
}
