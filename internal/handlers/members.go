package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rangbot-io/rangbotgo/internal/middleware"
	"github.com/rangbot-io/rangbotgo/internal/models"
	"github.com/rangbot-io/rangbotgo/internal/provisioning"
	"github.com/rangbot-io/rangbotgo/internal/utils"
)

// listMembers returns members for the staff dashboard, with device counts
func (r *Router) listMembers(w http.ResponseWriter, req *http.Request) {
	query := r.db.Model(&models.Member{}).Preload("Devices")

	if search := strings.TrimSpace(req.URL.Query().Get("search")); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"member_id ILIKE ? OR full_name ILIKE ? OR email ILIKE ?",
			like, like, like,
		)
	}

	var members []models.Member
	if err := query.Order("created_at DESC").Limit(100).Find(&members).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch members")
		return
	}

	type memberStats struct {
		models.Member
		TotalDevices int `json:"totalDevices"`
		BasicCount   int `json:"basicCount"`
		ProCount     int `json:"proCount"`
	}

	out := make([]memberStats, 0, len(members))
	for _, m := range members {
		stats := memberStats{Member: m, TotalDevices: len(m.Devices)}
		for _, d := range m.Devices {
			if strings.Contains(strings.ToLower(d.DeviceName), "pro") {
				stats.ProCount++
			} else {
				stats.BasicCount++
			}
		}
		out = append(out, stats)
	}

	respondJSON(w, http.StatusOK, out)
}

// setMemberActive flips the account freeze flag and records the action
func (r *Router) setMemberActive(w http.ResponseWriter, req *http.Request, active bool) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid member ID")
		return
	}

	var member models.Member
	if err := r.db.First(&member, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Member not found")
		return
	}

	staffID, ok := staffIDFromRequest(req)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	member.IsActive = active
	if err := r.db.Save(&member).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update member")
		return
	}

	action := models.ActionMemberDeactivated
	verb := "deactivated"
	if active {
		action = models.ActionMemberActivated
		verb = "activated"
	}
	_ = r.rec.Record(r.db.DB, provisioning.Entry{
		Action:      action,
		Description: "Member " + member.MemberID + " " + verb,
		PerformedBy: &staffID,
		MemberID:    &member.ID,
	})

	respondJSON(w, http.StatusOK, member)
}

func (r *Router) activateMember(w http.ResponseWriter, req *http.Request) {
	r.setMemberActive(w, req, true)
}

func (r *Router) deactivateMember(w http.ResponseWriter, req *http.Request) {
	r.setMemberActive(w, req, false)
}

// memberFromRequest resolves the authenticated member from the JWT claims
func (r *Router) memberFromRequest(w http.ResponseWriter, req *http.Request) (*models.Member, bool) {
	claims, ok := middleware.Claims(req)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid token")
		return nil, false
	}
	id, ok := utils.ClaimID(claims)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid token")
		return nil, false
	}

	var member models.Member
	if err := r.db.First(&member, id).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "Account not found")
		return nil, false
	}
	if !member.IsActive {
		respondError(w, http.StatusForbidden, "Your account has been deactivated")
		return nil, false
	}
	return &member, true
}

// memberDashboard summarizes the member's devices and recent events
func (r *Router) memberDashboard(w http.ResponseWriter, req *http.Request) {
	member, ok := r.memberFromRequest(w, req)
	if !ok {
		return
	}

	var devices []models.RangBotDevice
	r.db.Where("owner_id = ?", member.ID).Order("id").Find(&devices)

	online := 0
	for _, d := range devices {
		if d.Status == models.DeviceStatusActive {
			online++
		}
	}

	var unread int64
	r.db.Model(&models.Notification{}).
		Where("member_id = ? AND is_read = ?", member.ID, false).
		Count(&unread)

	var recentDetections []models.DetectionHistory
	if len(devices) > 0 {
		deviceIDs := make([]uint, len(devices))
		for i, d := range devices {
			deviceIDs[i] = d.ID
		}
		r.db.Where("device_id IN ?", deviceIDs).
			Order("created_at DESC").Limit(5).Find(&recentDetections)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"member":              member,
		"devices":             devices,
		"onlineDevices":       online,
		"unreadNotifications": unread,
		"recentDetections":    recentDetections,
	})
}

// memberProfile returns the authenticated member's account record
func (r *Router) memberProfile(w http.ResponseWriter, req *http.Request) {
	member, ok := r.memberFromRequest(w, req)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, member)
}

// UpdateProfileRequest carries member-editable profile fields
type UpdateProfileRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

// updateMemberProfile lets a member edit their contact details
func (r *Router) updateMemberProfile(w http.ResponseWriter, req *http.Request) {
	member, ok := r.memberFromRequest(w, req)
	if !ok {
		return
	}

	var update UpdateProfileRequest
	if err := json.NewDecoder(req.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if name := strings.TrimSpace(update.FullName); name != "" {
		member.FullName = name
	}
	if phone := strings.TrimSpace(update.Phone); phone != "" {
		member.Phone = phone
	}

	if err := r.db.Save(member).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	respondJSON(w, http.StatusOK, member)
}

// listNotifications returns the member's notifications, newest first
func (r *Router) listNotifications(w http.ResponseWriter, req *http.Request) {
	member, ok := r.memberFromRequest(w, req)
	if !ok {
		return
	}

	var notifications []models.Notification
	if err := r.db.Where("member_id = ?", member.ID).
		Order("created_at DESC").Limit(50).Find(&notifications).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	respondJSON(w, http.StatusOK, notifications)
}

// markNotificationRead flags one of the member's notifications as read
func (r *Router) markNotificationRead(w http.ResponseWriter, req *http.Request) {
	member, ok := r.memberFromRequest(w, req)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND member_id = ?", id, member.ID).
		Update("is_read", true)
	if result.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update notification")
		return
	}
	if result.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Notification not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}
