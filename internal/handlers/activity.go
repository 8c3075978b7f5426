package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/rangbot-io/rangbotgo/internal/models"
)

// listActivity returns the audit trail for the staff dashboard
func (r *Router) listActivity(w http.ResponseWriter, req *http.Request) {
	query := r.db.Model(&models.ActivityLog{})

	if actionType := models.ActionType(req.URL.Query().Get("action_type")); actionType != "" {
		if !models.KnownActionTypes[actionType] {
			respondError(w, http.StatusBadRequest, "Unknown action type")
			return
		}
		query = query.Where("action_type = ?", actionType)
	}

	limit := 100
	if raw := req.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	var entries []models.ActivityLog
	if err := query.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch activity log")
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// purgeActivity deletes log entries older than the given number of days
// (default 90). The purge itself is not logged.
func (r *Router) purgeActivity(w http.ResponseWriter, req *http.Request) {
	days := 90
	if raw := req.URL.Query().Get("older_than_days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "older_than_days must be a positive integer")
			return
		}
		days = n
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.ActivityLog{})
	if result.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to purge activity log")
		return
	}

	log.Printf("🗑️ Purged %d activity log entries older than %d days", result.RowsAffected, days)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": result.RowsAffected,
		"cutoff":  cutoff,
	})
}
