package provisioning

import (
	"testing"

	"github.com/rangbot-io/rangbotgo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordValidEntry(t *testing.T) {
	resetTables(t)
	staff := seedStaff(t)

	var rec Recorder
	err := rec.Record(testDB, Entry{
		Action:      models.ActionMemberUpdated,
		Description: "profile updated",
		PerformedBy: &staff.ID,
		Metadata:    map[string]interface{}{"field": "phone"},
	})
	require.NoError(t, err)

	var entry models.ActivityLog
	require.NoError(t, testDB.First(&entry).Error)
	assert.Equal(t, models.ActionMemberUpdated, entry.ActionType)
	assert.Equal(t, "profile updated", entry.Description)
	assert.NotEmpty(t, entry.ID)
	require.NotNil(t, entry.PerformedByID)
	assert.Equal(t, staff.ID, *entry.PerformedByID)
	assert.Contains(t, string(entry.Metadata), "phone")
}

func TestRecordRejectsUnknownAction(t *testing.T) {
	resetTables(t)

	var rec Recorder
	err := rec.Record(testDB, Entry{
		Action:      models.ActionType("made_coffee"),
		Description: "not a real action",
	})
	require.Error(t, err)

	var count int64
	testDB.Model(&models.ActivityLog{}).Count(&count)
	assert.Zero(t, count)
}
