package handlers

import (
	"fmt"
	"net/http"

	"github.com/rangbot-io/rangbotgo/internal/models"
	"github.com/rangbot-io/rangbotgo/internal/services/printer"
)

// staffDashboard aggregates the headline numbers for the staff landing view
func (r *Router) staffDashboard(w http.ResponseWriter, req *http.Request) {
	var pendingOrders, verifiedOrders, rejectedOrders int64
	r.db.Model(&models.PurchaseOrder{}).Where("status = ?", models.OrderStatusPending).Count(&pendingOrders)
	r.db.Model(&models.PurchaseOrder{}).Where("status = ?", models.OrderStatusVerified).Count(&verifiedOrders)
	r.db.Model(&models.PurchaseOrder{}).Where("status = ?", models.OrderStatusRejected).Count(&rejectedOrders)

	var totalMembers, registeredMembers int64
	r.db.Model(&models.Member{}).Count(&totalMembers)
	r.db.Model(&models.Member{}).Where("is_registered = ?", true).Count(&registeredMembers)

	var totalDevices, offlineDevices int64
	r.db.Model(&models.RangBotDevice{}).Count(&totalDevices)
	r.db.Model(&models.RangBotDevice{}).Where("status = ?", models.DeviceStatusOffline).Count(&offlineDevices)

	var newMessages int64
	r.db.Model(&models.ContactMessage{}).Where("status = ?", models.MessageStatusNew).Count(&newMessages)

	var recentOrders []models.PurchaseOrder
	r.db.Order("created_at DESC").Limit(5).Find(&recentOrders)

	var recentActivity []models.ActivityLog
	r.db.Order("created_at DESC").Limit(10).Find(&recentActivity)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"orders": map[string]int64{
			"pending":  pendingOrders,
			"verified": verifiedOrders,
			"rejected": rejectedOrders,
		},
		"members": map[string]int64{
			"total":      totalMembers,
			"registered": registeredMembers,
		},
		"devices": map[string]int64{
			"total":   totalDevices,
			"offline": offlineDevices,
		},
		"newMessages":    newMessages,
		"recentOrders":   recentOrders,
		"recentActivity": recentActivity,
	})
}

// orderLabelsPDF renders the QR serial labels for a verified order's devices
func (r *Router) orderLabelsPDF(w http.ResponseWriter, req *http.Request) {
	order, ok := r.orderFromPath(w, req)
	if !ok {
		return
	}
	if !order.IsVerified() {
		respondError(w, http.StatusConflict, "Labels are only available for verified orders")
		return
	}

	// Reorders keep the order's own member id empty, so resolve the owner
	// through the provisioned devices.
	var devices []models.RangBotDevice
	if err := r.db.Where("purchase_order_id = ?", order.ID).Order("id").Find(&devices).Error; err != nil || len(devices) == 0 {
		respondError(w, http.StatusNotFound, "No devices found for this order")
		return
	}

	var member models.Member
	if err := r.db.First(&member, devices[0].OwnerID).Error; err != nil {
		respondError(w, http.StatusNotFound, "Member record not found for this order")
		return
	}

	labels := make([]printer.Label, len(devices))
	for i, d := range devices {
		labels[i] = printer.Label{
			SerialNumber: d.SerialNumber,
			DeviceName:   d.DisplayName(),
			MemberID:     member.MemberID,
		}
	}

	pdfBytes, err := printer.GenerateLabelsPDF(labels, printer.DefaultSheet)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate label sheet")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=order-%d-labels.pdf", order.ID))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
