package provisioning

import (
	"fmt"
	"time"

	"testing"

	"github.com/rangbot-io/rangbotgo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func currentYearMemberID(n int) string {
	return fmt.Sprintf("MBR-%d-%05d", time.Now().UTC().Year(), n)
}

func TestVerifyFirstOrder(t *testing.T) {
	resetTables(t)
	staff := seedStaff(t)
	order := seedOrder(t, 2, 1)

	svc := NewService(testDB)
	result, err := svc.Verify(order.ID, staff.ID)
	require.NoError(t, err)

	assert.True(t, result.NewMember)
	assert.Equal(t, currentYearMemberID(1), result.Member.MemberID)
	assert.False(t, result.Member.IsRegistered)
	assert.Equal(t, order.CustomerEmail, result.Member.Email)

	require.Len(t, result.Devices, 3)
	assert.Equal(t, "RBT-SN-01-88401", result.Devices[0].SerialNumber)
	assert.Equal(t, "RBT-SN-01-88402", result.Devices[1].SerialNumber)
	assert.Equal(t, "RBT-SN-01-88403", result.Devices[2].SerialNumber)
	assert.Equal(t, "RangBot Basic 1", result.Devices[0].DeviceName)
	assert.Equal(t, "RangBot Basic 2", result.Devices[1].DeviceName)
	assert.Equal(t, "RangBot Pro 1", result.Devices[2].DeviceName)
	for _, d := range result.Devices {
		assert.Equal(t, models.DeviceStatusOffline, d.Status)
		assert.Equal(t, result.Member.ID, d.OwnerID)
		require.NotNil(t, d.PurchaseOrderID)
		assert.Equal(t, order.ID, *d.PurchaseOrderID)
	}

	var reloaded models.PurchaseOrder
	require.NoError(t, testDB.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderStatusVerified, reloaded.Status)
	require.NotNil(t, reloaded.MemberID)
	assert.Equal(t, result.Member.MemberID, *reloaded.MemberID)
	require.NotNil(t, reloaded.VerifiedByID)
	assert.Equal(t, staff.ID, *reloaded.VerifiedByID)
	assert.NotNil(t, reloaded.VerifiedAt)

	// Audit trail: 1 summary + 1 member created + 3 serials
	var logCount int64
	testDB.Model(&models.ActivityLog{}).Count(&logCount)
	assert.EqualValues(t, 5, logCount)
}

func TestVerifyReorderReusesMember(t *testing.T) {
	resetTables(t)
	staff := seedStaff(t)

	svc := NewService(testDB)
	first, err := svc.Verify(seedOrder(t, 2, 1).ID, staff.ID)
	require.NoError(t, err)

	reorder := seedReorder(t, first.Member.MemberID, 1, 0)
	result, err := svc.Verify(reorder.ID, staff.ID)
	require.NoError(t, err)

	assert.False(t, result.NewMember)
	assert.Equal(t, first.Member.ID, result.Member.ID)

	require.Len(t, result.Devices, 1)
	assert.Equal(t, "RBT-SN-01-88404", result.Devices[0].SerialNumber)
	assert.Equal(t, first.Member.ID, result.Devices[0].OwnerID)

	var memberCount int64
	testDB.Model(&models.Member{}).Count(&memberCount)
	assert.EqualValues(t, 1, memberCount)
}

func TestVerifyReorderMissingMember(t *testing.T) {
	resetTables(t)
	staff := seedStaff(t)
	order := seedReorder(t, "MBR-2020-99999", 1, 0)

	svc := NewService(testDB)
	_, err := svc.Verify(order.ID, staff.ID)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	var reloaded models.PurchaseOrder
	require.NoError(t, testDB.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, reloaded.Status)

	var deviceCount int64
	testDB.Model(&models.RangBotDevice{}).Count(&deviceCount)
	assert.Zero(t, deviceCount)
}

func TestVerifyZeroUnits(t *testing.T) {
	resetTables(t)
	staff := seedStaff(t)
	order := seedOrder(t, 0, 0)

	svc := NewService(testDB)
	_, err := svc.Verify(order.ID, staff.ID)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	var reloaded models.PurchaseOrder
	require.NoError(t, testDB.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, reloaded.Status)

	var memberCount int64
	testDB.Model(&models.Member{}).Count(&memberCount)
	assert.Zero(t, memberCount)
}

func TestVerifyTwiceConflicts(t *testing.T) {
	resetTables(t)
	staff := seedStaff(t)
	order := seedOrder(t, 1, 0)

	svc := NewService(testDB)
	_, err := svc.Verify(order.ID, staff.ID)
	require.NoError(t, err)

	_, err = svc.Verify(order.ID, staff.ID)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	// The failed second call must not have created anything
	var memberCount, deviceCount int64
	testDB.Model(&models.Member{}).Count(&memberCount)
	testDB.Model(&models.RangBotDevice{}).Count(&deviceCount)
	assert.EqualValues(t, 1, memberCount)
	assert.EqualValues(t, 1, deviceCount)
}

func TestVerifyMissingOrder(t *testing.T) {
	resetTables(t)
	staff := seedStaff(t)

	svc := NewService(testDB)
	_, err := svc.Verify(4242, staff.ID)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestMemberIDsIncrementAcrossVerifications(t *testing.T) {
	resetTables(t)
	staff := seedStaff(t)
	svc := NewService(testDB)

	for i := 1; i <= 3; i++ {
		result, err := svc.Verify(seedOrder(t, 1, 0).ID, staff.ID)
		require.NoError(t, err)
		assert.Equal(t, currentYearMemberID(i), result.Member.MemberID)
	}
}

func TestSerialsContiguousWithinBatch(t *testing.T) {
	resetTables(t)
	staff := seedStaff(t)
	svc := NewService(testDB)

	result, err := svc.Verify(seedOrder(t, 3, 2).ID, staff.ID)
	require.NoError(t, err)
	require.Len(t, result.Devices, 5)

	for i, d := range result.Devices {
		assert.Equal(t, fmt.Sprintf("RBT-SN-01-%d", 88401+i), d.SerialNumber)
	}
}

func TestRejectPendingOrder(t *testing.T) {
	resetTables(t)
	staff := seedStaff(t)
	order := seedOrder(t, 1, 0)
	order.Notes = "customer asked for a callback"
	require.NoError(t, testDB.Save(order).Error)

	svc := NewService(testDB)
	rejected, err := svc.Reject(order.ID, staff.ID, "payment never arrived")
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusRejected, rejected.Status)
	assert.Contains(t, rejected.Notes, "[REJECTED] payment never arrived")
	assert.Contains(t, rejected.Notes, "customer asked for a callback")
	require.NotNil(t, rejected.VerifiedByID)
	assert.Equal(t, staff.ID, *rejected.VerifiedByID)

	// No provisioning side effects
	var memberCount, deviceCount int64
	testDB.Model(&models.Member{}).Count(&memberCount)
	testDB.Model(&models.RangBotDevice{}).Count(&deviceCount)
	assert.Zero(t, memberCount)
	assert.Zero(t, deviceCount)

	var logCount int64
	testDB.Model(&models.ActivityLog{}).Where("action_type = ?", models.ActionOrderRejected).Count(&logCount)
	assert.EqualValues(t, 1, logCount)
}

func TestRejectAfterVerifyConflicts(t *testing.T) {
	resetTables(t)
	staff := seedStaff(t)
	order := seedOrder(t, 1, 0)

	svc := NewService(testDB)
	_, err := svc.Verify(order.ID, staff.ID)
	require.NoError(t, err)

	_, err = svc.Reject(order.ID, staff.ID, "changed my mind")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	var reloaded models.PurchaseOrder
	require.NoError(t, testDB.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderStatusVerified, reloaded.Status)
}

func TestVerifyAlreadyRejectedConflicts(t *testing.T) {
	resetTables(t)
	staff := seedStaff(t)
	order := seedOrder(t, 1, 0)

	svc := NewService(testDB)
	_, err := svc.Reject(order.ID, staff.ID, "")
	require.NoError(t, err)

	_, err = svc.Verify(order.ID, staff.ID)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	var reloaded models.PurchaseOrder
	require.NoError(t, testDB.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderStatusRejected, reloaded.Status)
}
