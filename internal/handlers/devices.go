package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rangbot-io/rangbotgo/internal/models"
)

// listMemberDevices returns the authenticated member's devices
func (r *Router) listMemberDevices(w http.ResponseWriter, req *http.Request) {
	member, ok := r.memberFromRequest(w, req)
	if !ok {
		return
	}

	var devices []models.RangBotDevice
	if err := r.db.Where("owner_id = ?", member.ID).Order("id").Find(&devices).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch devices")
		return
	}

	respondJSON(w, http.StatusOK, devices)
}

// deviceFromPath loads a device owned by the authenticated member
func (r *Router) deviceFromPath(w http.ResponseWriter, req *http.Request, member *models.Member) (*models.RangBotDevice, bool) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid device ID")
		return nil, false
	}

	var device models.RangBotDevice
	if err := r.db.Where("id = ? AND owner_id = ?", id, member.ID).First(&device).Error; err != nil {
		respondError(w, http.StatusNotFound, "Device not found")
		return nil, false
	}
	return &device, true
}

// getMemberDevice returns one device with its latest detections
func (r *Router) getMemberDevice(w http.ResponseWriter, req *http.Request) {
	member, ok := r.memberFromRequest(w, req)
	if !ok {
		return
	}
	device, ok := r.deviceFromPath(w, req, member)
	if !ok {
		return
	}

	var detections []models.DetectionHistory
	r.db.Where("device_id = ?", device.ID).Order("created_at DESC").Limit(10).Find(&detections)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"device":     device,
		"detections": detections,
	})
}

// UpdateDeviceRequest carries the member-editable device fields
type UpdateDeviceRequest struct {
	DeviceName    string `json:"deviceName"`
	CoveredBlocks string `json:"coveredBlocks"`
}

// updateMemberDevice renames a device or reassigns its covered blocks
func (r *Router) updateMemberDevice(w http.ResponseWriter, req *http.Request) {
	member, ok := r.memberFromRequest(w, req)
	if !ok {
		return
	}
	device, ok := r.deviceFromPath(w, req, member)
	if !ok {
		return
	}

	var update UpdateDeviceRequest
	if err := json.NewDecoder(req.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if name := strings.TrimSpace(update.DeviceName); name != "" {
		device.DeviceName = name
	}
	if blocks := strings.TrimSpace(update.CoveredBlocks); blocks != "" {
		device.CoveredBlocks = blocks
	}

	if err := r.db.Save(device).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update device")
		return
	}

	respondJSON(w, http.StatusOK, device)
}

// listDetections returns the detection history of one device
func (r *Router) listDetections(w http.ResponseWriter, req *http.Request) {
	member, ok := r.memberFromRequest(w, req)
	if !ok {
		return
	}
	device, ok := r.deviceFromPath(w, req, member)
	if !ok {
		return
	}

	var detections []models.DetectionHistory
	if err := r.db.Where("device_id = ?", device.ID).
		Order("created_at DESC").Limit(100).Find(&detections).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch detection history")
		return
	}

	respondJSON(w, http.StatusOK, detections)
}

// ManualDetectionRequest submits a manual disease check for a device
type ManualDetectionRequest struct {
	ImageURL        string   `json:"imageUrl"`
	DiseaseDetected string   `json:"diseaseDetected"`
	Confidence      *float64 `json:"confidence"`
	Location        string   `json:"location"`
}

// createManualDetection records a manual detection and, when the analyzer is
// configured, attaches an AI-written advisory for the reported disease.
func (r *Router) createManualDetection(w http.ResponseWriter, req *http.Request) {
	member, ok := r.memberFromRequest(w, req)
	if !ok {
		return
	}
	device, ok := r.deviceFromPath(w, req, member)
	if !ok {
		return
	}

	var detReq ManualDetectionRequest
	if err := json.NewDecoder(req.Body).Decode(&detReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if strings.TrimSpace(detReq.ImageURL) == "" {
		respondError(w, http.StatusBadRequest, "Image URL is required")
		return
	}

	detection := models.DetectionHistory{
		DeviceID:        device.ID,
		ImageURL:        detReq.ImageURL,
		DiseaseDetected: strings.TrimSpace(detReq.DiseaseDetected),
		Confidence:      detReq.Confidence,
		Location:        strings.TrimSpace(detReq.Location),
		Type:            models.DetectionManual,
	}

	if r.detector != nil && detection.DiseaseDetected != "" {
		analysis, err := r.detector.Analyze(req.Context(), detection.DiseaseDetected, detection.Location)
		if err != nil {
			log.Printf("⚠️ Detection analysis unavailable: %v", err)
		} else {
			detection.Analysis = analysis
		}
	}

	if err := r.db.Create(&detection).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to record detection")
		return
	}

	notification := models.Notification{
		MemberID: member.ID,
		Type:     models.NotifyDetectionNew,
		Title:    "New detection on " + device.DisplayName(),
		Message:  "A manual disease check was recorded for " + device.SerialNumber,
	}
	r.db.Create(&notification)

	respondJSON(w, http.StatusCreated, detection)
}
