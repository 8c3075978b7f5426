package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rangbot-io/rangbotgo/internal/models"
)

// ContactRequest is the public contact form payload
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// createContactMessage takes a support request from the landing page
func (r *Router) createContactMessage(w http.ResponseWriter, req *http.Request) {
	var contactReq ContactRequest
	if err := json.NewDecoder(req.Body).Decode(&contactReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	contactReq.Name = strings.TrimSpace(contactReq.Name)
	contactReq.Email = strings.TrimSpace(contactReq.Email)
	contactReq.Subject = strings.TrimSpace(contactReq.Subject)
	contactReq.Message = strings.TrimSpace(contactReq.Message)

	if contactReq.Name == "" || contactReq.Email == "" || contactReq.Subject == "" || contactReq.Message == "" {
		respondError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	message := models.ContactMessage{
		Name:    contactReq.Name,
		Email:   contactReq.Email,
		Subject: contactReq.Subject,
		Message: contactReq.Message,
		Status:  models.MessageStatusNew,
	}
	if err := r.db.Create(&message).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to submit message")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Thank you for contacting us. We will get back to you soon.",
		"messageId": message.ID,
	})
}

// listContactMessages returns support messages for the CS inbox
func (r *Router) listContactMessages(w http.ResponseWriter, req *http.Request) {
	query := r.db.Model(&models.ContactMessage{})

	if status := req.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var messages []models.ContactMessage
	if err := query.Order("created_at DESC").Limit(200).Find(&messages).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}

	respondJSON(w, http.StatusOK, messages)
}

// messageFromPath loads the contact message named by the {id} path variable
func (r *Router) messageFromPath(w http.ResponseWriter, req *http.Request) (*models.ContactMessage, bool) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid message ID")
		return nil, false
	}

	var message models.ContactMessage
	if err := r.db.First(&message, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Message not found")
		return nil, false
	}
	return &message, true
}

// markMessageRead moves a new message into the read state
func (r *Router) markMessageRead(w http.ResponseWriter, req *http.Request) {
	message, ok := r.messageFromPath(w, req)
	if !ok {
		return
	}

	if message.Status == models.MessageStatusNew {
		message.Status = models.MessageStatusRead
		if err := r.db.Save(message).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to update message")
			return
		}
	}

	respondJSON(w, http.StatusOK, message)
}

// ReplyRequest carries the CS reply text
type ReplyRequest struct {
	Reply string `json:"reply"`
}

// replyContactMessage records a staff reply on a support message
func (r *Router) replyContactMessage(w http.ResponseWriter, req *http.Request) {
	message, ok := r.messageFromPath(w, req)
	if !ok {
		return
	}

	var replyReq ReplyRequest
	if err := json.NewDecoder(req.Body).Decode(&replyReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if strings.TrimSpace(replyReq.Reply) == "" {
		respondError(w, http.StatusBadRequest, "Reply text is required")
		return
	}

	staffID, ok := staffIDFromRequest(req)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	now := time.Now().UTC()
	message.Status = models.MessageStatusReplied
	message.ReplyMessage = strings.TrimSpace(replyReq.Reply)
	message.RepliedByID = &staffID
	message.RepliedAt = &now

	if err := r.db.Save(message).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save reply")
		return
	}

	respondJSON(w, http.StatusOK, message)
}

// archiveContactMessage moves a message out of the active inbox
func (r *Router) archiveContactMessage(w http.ResponseWriter, req *http.Request) {
	message, ok := r.messageFromPath(w, req)
	if !ok {
		return
	}

	message.Status = models.MessageStatusArchived
	if err := r.db.Save(message).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to archive message")
		return
	}

	respondJSON(w, http.StatusOK, message)
}
