package provisioning

import (
	"fmt"
	"testing"
	"time"

	"github.com/rangbot-io/rangbotgo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSerial(t *testing.T) {
	tests := []struct {
		sequence int
		want     string
	}{
		{1, "RBT-SN-01-88401"},
		{2, "RBT-SN-01-88402"},
		{10, "RBT-SN-01-88410"},
		{100, "RBT-SN-01-88500"},
		{1600, "RBT-SN-01-90000"},
	}

	for _, tt := range tests {
		if got := FormatSerial(tt.sequence); got != tt.want {
			t.Errorf("FormatSerial(%d) = %q, want %q", tt.sequence, got, tt.want)
		}
	}
}

func TestTrailingNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"MBR-2025-00001", 1, true},
		{"MBR-2025-00492", 492, true},
		{"RBT-SN-01-88401", 88401, true},
		{"MBR-2025-", 0, false},
		{"MBR-2025-abc", 0, false},
		{"nodashes", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := trailingNumber(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("trailingNumber(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNextMemberIDEmptyDatabase(t *testing.T) {
	resetTables(t)

	var gen Generator
	want := fmt.Sprintf("MBR-%d-00001", time.Now().UTC().Year())
	assert.Equal(t, want, gen.NextMemberID(testDB))
}

func TestNextMemberIDFollowsLastOrder(t *testing.T) {
	resetTables(t)

	memberID := fmt.Sprintf("MBR-%d-00491", time.Now().UTC().Year())
	order := &models.PurchaseOrder{
		CustomerName:  "Siti",
		CustomerEmail: "siti@example.com",
		CustomerPhone: "+62-812-0000-0002",
		Status:        models.OrderStatusVerified,
		MemberID:      &memberID,
	}
	require.NoError(t, testDB.Create(order).Error)

	var gen Generator
	want := fmt.Sprintf("MBR-%d-00492", time.Now().UTC().Year())
	assert.Equal(t, want, gen.NextMemberID(testDB))
}

func TestNextMemberIDIgnoresOtherYears(t *testing.T) {
	resetTables(t)

	memberID := "MBR-2019-00777"
	order := &models.PurchaseOrder{
		CustomerName:  "Siti",
		CustomerEmail: "siti@example.com",
		CustomerPhone: "+62-812-0000-0002",
		Status:        models.OrderStatusVerified,
		MemberID:      &memberID,
	}
	require.NoError(t, testDB.Create(order).Error)

	var gen Generator
	want := fmt.Sprintf("MBR-%d-00001", time.Now().UTC().Year())
	assert.Equal(t, want, gen.NextMemberID(testDB))
}

func TestNextSerialSequenceEmptyDatabase(t *testing.T) {
	resetTables(t)

	var gen Generator
	assert.Equal(t, 1, gen.NextSerialSequence(testDB))
}

func TestNextSerialSequenceFollowsLastDevice(t *testing.T) {
	resetTables(t)
	member := seedBareMember(t, "MBR-2024-00001")

	device := &models.RangBotDevice{
		SerialNumber: "RBT-SN-01-88410",
		OwnerID:      member.ID,
		Status:       models.DeviceStatusOffline,
	}
	require.NoError(t, testDB.Create(device).Error)

	var gen Generator
	assert.Equal(t, 11, gen.NextSerialSequence(testDB))
}

func TestNextSerialSequenceUnparseableFallsBack(t *testing.T) {
	resetTables(t)
	member := seedBareMember(t, "MBR-2024-00001")

	device := &models.RangBotDevice{
		SerialNumber: "LEGACYSERIAL",
		OwnerID:      member.ID,
		Status:       models.DeviceStatusOffline,
	}
	require.NoError(t, testDB.Create(device).Error)

	var gen Generator
	assert.Equal(t, 1, gen.NextSerialSequence(testDB))
}

func TestNextSerialSequenceIncludesSoftDeleted(t *testing.T) {
	resetTables(t)
	member := seedBareMember(t, "MBR-2024-00001")

	device := &models.RangBotDevice{
		SerialNumber: "RBT-SN-01-88405",
		OwnerID:      member.ID,
		Status:       models.DeviceStatusOffline,
	}
	require.NoError(t, testDB.Create(device).Error)
	require.NoError(t, testDB.Delete(device).Error)

	// A retired device still owns its serial; the sequence must not reuse it
	var gen Generator
	assert.Equal(t, 6, gen.NextSerialSequence(testDB))
}

func seedBareMember(t *testing.T, memberID string) *models.Member {
	t.Helper()
	member := &models.Member{
		MemberID: memberID,
		FullName: "Seed Member",
		Email:    "seed@example.com",
		IsActive: true,
	}
	require.NoError(t, testDB.Create(member).Error)
	return member
}
