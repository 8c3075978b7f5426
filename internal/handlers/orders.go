package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rangbot-io/rangbotgo/internal/middleware"
	"github.com/rangbot-io/rangbotgo/internal/models"
	"github.com/rangbot-io/rangbotgo/internal/provisioning"
	"github.com/rangbot-io/rangbotgo/internal/utils"
)

// CreateOrderRequest is the public purchase form payload
type CreateOrderRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	Company          string `json:"company"`
	QtyBasic         int    `json:"qtyBasic"`
	QtyProfessional  int    `json:"qtyProfessional"`
	Notes            string `json:"notes"`
	PaymentMethod    string `json:"paymentMethod"`
	IsReorder        bool   `json:"isReorder"`
	OriginalMemberID string `json:"originalMemberId"`
}

var validPaymentMethods = map[string]bool{
	models.PaymentTransfer:    true,
	models.PaymentCredit:      true,
	models.PaymentInstallment: true,
	models.PaymentLeasing:     true,
}

// createOrder takes a purchase order from the public landing page
func (r *Router) createOrder(w http.ResponseWriter, req *http.Request) {
	var orderReq CreateOrderRequest
	if err := json.NewDecoder(req.Body).Decode(&orderReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	orderReq.Name = strings.TrimSpace(orderReq.Name)
	orderReq.Email = strings.TrimSpace(orderReq.Email)
	orderReq.Phone = strings.TrimSpace(orderReq.Phone)
	orderReq.Address = strings.TrimSpace(orderReq.Address)

	if orderReq.Name == "" || orderReq.Email == "" || orderReq.Phone == "" || orderReq.Address == "" {
		respondError(w, http.StatusBadRequest, "Name, email, phone and installation address are required")
		return
	}
	if orderReq.QtyBasic < 0 || orderReq.QtyProfessional < 0 || orderReq.QtyBasic+orderReq.QtyProfessional == 0 {
		respondError(w, http.StatusBadRequest, "Select at least one package (Basic or Professional)")
		return
	}
	if orderReq.PaymentMethod != "" && !validPaymentMethods[orderReq.PaymentMethod] {
		respondError(w, http.StatusBadRequest, "Invalid payment method")
		return
	}
	if orderReq.IsReorder && strings.TrimSpace(orderReq.OriginalMemberID) == "" {
		respondError(w, http.StatusBadRequest, "Reorders must reference the original member id")
		return
	}

	// Current package prices come from the admin-managed product listings
	var products []models.ProductInfo
	if err := r.db.Where("is_active = ?", true).Find(&products).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load product pricing")
		return
	}
	var priceBasic, pricePro float64
	for _, p := range products {
		switch p.PackageType {
		case models.PackageBasic:
			priceBasic = p.Price
		case models.PackageProfessional:
			pricePro = p.Price
		}
	}

	order := models.PurchaseOrder{
		CustomerName:    orderReq.Name,
		CustomerEmail:   orderReq.Email,
		CustomerPhone:   orderReq.Phone,
		CustomerAddress: orderReq.Address,
		CompanyName:     strings.TrimSpace(orderReq.Company),
		QtyBasic:        orderReq.QtyBasic,
		QtyProfessional: orderReq.QtyProfessional,
		TotalPrice:      float64(orderReq.QtyBasic)*priceBasic + float64(orderReq.QtyProfessional)*pricePro,
		Notes:           strings.TrimSpace(orderReq.Notes),
		PaymentMethod:   orderReq.PaymentMethod,
		Status:          models.OrderStatusPending,
		IsReorder:       orderReq.IsReorder,
	}
	if orderReq.IsReorder {
		original := strings.ToUpper(strings.TrimSpace(orderReq.OriginalMemberID))
		order.OriginalMemberID = &original
	}

	if err := r.db.Create(&order).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	_ = r.rec.Record(r.db.DB, provisioning.Entry{
		Action: models.ActionOrderCreated,
		Description: fmt.Sprintf("New purchase: order #%d from %s (%s), %d unit(s) (basic: %d, pro: %d)",
			order.ID, order.CustomerName, order.CustomerEmail, order.TotalUnits(), order.QtyBasic, order.QtyProfessional),
		OrderID: &order.ID,
		Metadata: map[string]interface{}{
			"totalUnits": order.TotalUnits(),
			"totalPrice": order.TotalPrice,
		},
	})
	r.feed.BroadcastEvent("order_created", order)

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Your order has been submitted. Our team will contact you within 24 hours for verification.",
		"orderId":     order.ID,
		"orderNumber": order.OrderNumber(),
	})
}

// listOrders returns purchase orders for the staff dashboard, with optional
// status filter and free-text search.
func (r *Router) listOrders(w http.ResponseWriter, req *http.Request) {
	query := r.db.Model(&models.PurchaseOrder{})

	if status := req.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := strings.TrimSpace(req.URL.Query().Get("search")); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"customer_name ILIKE ? OR customer_email ILIKE ? OR customer_phone ILIKE ? OR member_id ILIKE ?",
			like, like, like, like,
		)
	}

	var orders []models.PurchaseOrder
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// getOrder returns one order with its provisioned member and devices
func (r *Router) getOrder(w http.ResponseWriter, req *http.Request) {
	order, ok := r.orderFromPath(w, req)
	if !ok {
		return
	}

	response := map[string]interface{}{"order": order}

	if order.MemberID != nil {
		var member models.Member
		if err := r.db.Where("member_id = ?", *order.MemberID).First(&member).Error; err == nil {
			response["member"] = member

			var devices []models.RangBotDevice
			r.db.Where("owner_id = ? AND purchase_order_id = ?", member.ID, order.ID).
				Order("id").Find(&devices)
			response["devices"] = devices
		}
	}

	respondJSON(w, http.StatusOK, response)
}

// verifyOrder runs the provisioning workflow for a pending order
func (r *Router) verifyOrder(w http.ResponseWriter, req *http.Request) {
	order, ok := r.orderFromPath(w, req)
	if !ok {
		return
	}

	staffID, ok := staffIDFromRequest(req)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	result, err := r.svc.Verify(order.ID, staffID)
	if err != nil {
		respondProvisioningError(w, err)
		return
	}

	log.Printf("✅ Order #%d verified: member %s, %d device(s)", order.ID, result.Member.MemberID, len(result.Devices))
	r.feed.BroadcastEvent("order_verified", result)

	respondJSON(w, http.StatusOK, result)
}

// RejectOrderRequest carries the optional rejection reason
type RejectOrderRequest struct {
	Reason string `json:"reason"`
}

// rejectOrder declines a pending order
func (r *Router) rejectOrder(w http.ResponseWriter, req *http.Request) {
	order, ok := r.orderFromPath(w, req)
	if !ok {
		return
	}

	staffID, ok := staffIDFromRequest(req)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var rejectReq RejectOrderRequest
	_ = json.NewDecoder(req.Body).Decode(&rejectReq)

	rejected, err := r.svc.Reject(order.ID, staffID, rejectReq.Reason)
	if err != nil {
		respondProvisioningError(w, err)
		return
	}

	log.Printf("🚫 Order #%d rejected", order.ID)
	r.feed.BroadcastEvent("order_rejected", rejected)

	respondJSON(w, http.StatusOK, rejected)
}

// orderFromPath loads the order named by the {id} path variable
func (r *Router) orderFromPath(w http.ResponseWriter, req *http.Request) (*models.PurchaseOrder, bool) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order ID")
		return nil, false
	}

	var order models.PurchaseOrder
	if err := r.db.First(&order, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Order not found")
		return nil, false
	}
	return &order, true
}

// staffIDFromRequest extracts the acting staff id from the JWT claims
func staffIDFromRequest(req *http.Request) (uint, bool) {
	claims, ok := middleware.Claims(req)
	if !ok {
		return 0, false
	}
	return utils.ClaimID(claims)
}

// respondProvisioningError maps workflow errors onto HTTP statuses
func respondProvisioningError(w http.ResponseWriter, err error) {
	var conflict *provisioning.ConflictError
	var validation *provisioning.ValidationError
	var notFound *provisioning.NotFoundError

	switch {
	case errors.As(err, &conflict):
		respondError(w, http.StatusConflict, conflict.Msg)
	case errors.As(err, &validation):
		respondError(w, http.StatusUnprocessableEntity, validation.Msg)
	case errors.As(err, &notFound):
		respondError(w, http.StatusNotFound, notFound.Msg)
	default:
		log.Printf("❌ Provisioning error: %v", err)
		respondError(w, http.StatusInternalServerError, "The operation failed due to an internal error")
	}
}
