package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rangbot-io/rangbotgo/internal/models"
	"github.com/rangbot-io/rangbotgo/internal/provisioning"
	"github.com/rangbot-io/rangbotgo/internal/utils"
)

// LoginRequest represents a unified login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest represents a member self-registration request. The member
// id must already exist: it is provisioned by staff during order verification.
type RegisterRequest struct {
	MemberID        string `json:"memberId"`
	Username        string `json:"username"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// login handles the unified login: staff accounts first, then members
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	var loginReq LoginRequest
	if err := json.NewDecoder(req.Body).Decode(&loginReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if loginReq.Username == "" || loginReq.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	now := time.Now().UTC()

	// 1. Try staff (admin or customer service)
	var staff models.StaffUser
	if err := r.db.Where("username = ? AND is_active = ?", loginReq.Username, true).First(&staff).Error; err == nil {
		if utils.CheckPasswordHash(loginReq.Password, staff.Password) {
			staff.LastLogin = &now
			r.db.Model(&staff).Update("last_login", now)

			token, err := utils.GenerateStaffToken(&staff, r.cfg.JWTSecret)
			if err != nil {
				respondError(w, http.StatusInternalServerError, "Failed to generate token")
				return
			}
			respondJSON(w, http.StatusOK, map[string]interface{}{
				"token": token,
				"kind":  utils.SubjectStaff,
				"user":  staff,
			})
			return
		}
	}

	// 2. Try registered member
	var member models.Member
	if err := r.db.Where("username = ? AND is_registered = ?", loginReq.Username, true).First(&member).Error; err == nil {
		if !member.IsActive {
			respondError(w, http.StatusForbidden, "Your account has been deactivated. Please contact support.")
			return
		}
		if member.Password != nil && utils.CheckPasswordHash(loginReq.Password, *member.Password) {
			member.LastLogin = &now
			r.db.Model(&member).Update("last_login", now)

			token, err := utils.GenerateMemberToken(&member, r.cfg.JWTSecret)
			if err != nil {
				respondError(w, http.StatusInternalServerError, "Failed to generate token")
				return
			}
			respondJSON(w, http.StatusOK, map[string]interface{}{
				"token": token,
				"kind":  utils.SubjectMember,
				"user":  member,
			})
			return
		}
	}

	respondError(w, http.StatusUnauthorized, "Invalid credentials")
}

// registerMember completes self-service signup against a provisioned member id
func (r *Router) registerMember(w http.ResponseWriter, req *http.Request) {
	var regReq RegisterRequest
	if err := json.NewDecoder(req.Body).Decode(&regReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	regReq.MemberID = strings.ToUpper(strings.TrimSpace(regReq.MemberID))
	regReq.Username = strings.TrimSpace(regReq.Username)
	regReq.Email = strings.TrimSpace(regReq.Email)

	switch {
	case regReq.MemberID == "" || regReq.Username == "" || regReq.FullName == "" || regReq.Email == "" || regReq.Password == "":
		respondError(w, http.StatusBadRequest, "All required fields must be filled")
		return
	case regReq.Password != regReq.ConfirmPassword:
		respondError(w, http.StatusBadRequest, "Passwords do not match")
		return
	case len(regReq.Password) < 8:
		respondError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	var member models.Member
	if err := r.db.Where("member_id = ?", regReq.MemberID).First(&member).Error; err != nil {
		respondError(w, http.StatusNotFound, "Member ID not found. Use the ID issued after your purchase was verified.")
		return
	}

	if member.IsRegistered {
		respondError(w, http.StatusConflict, "This Member ID is already registered. Please log in.")
		return
	}

	// The registration email must match the purchase order email
	if !strings.EqualFold(member.Email, regReq.Email) {
		respondError(w, http.StatusBadRequest, "Email does not match the email on the purchase order")
		return
	}

	var taken int64
	r.db.Model(&models.Member{}).
		Where("username = ? AND member_id <> ?", regReq.Username, member.MemberID).
		Count(&taken)
	if taken > 0 {
		respondError(w, http.StatusConflict, "Username is already taken")
		return
	}

	hashed, err := utils.HashPassword(regReq.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	member.Username = &regReq.Username
	member.FullName = regReq.FullName
	if regReq.Phone != "" {
		member.Phone = regReq.Phone
	}
	member.Password = &hashed
	member.IsRegistered = true

	if err := r.db.Save(&member).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to complete registration")
		return
	}

	_ = r.rec.Record(r.db.DB, provisioning.Entry{
		Action:      models.ActionMemberRegistered,
		Description: "Member " + member.MemberID + " (" + member.FullName + ") completed registration",
		MemberID:    &member.ID,
		Metadata: map[string]interface{}{
			"memberId": member.MemberID,
			"username": regReq.Username,
		},
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Registration complete. Please log in.",
		"user":    member,
	})
}

// ForumAuthRequest logs a forum user in by email, creating the account on
// first use.
type ForumAuthRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// forumAuth handles the lightweight email-based forum signup/login
func (r *Router) forumAuth(w http.ResponseWriter, req *http.Request) {
	var authReq ForumAuthRequest
	if err := json.NewDecoder(req.Body).Decode(&authReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	authReq.Email = strings.ToLower(strings.TrimSpace(authReq.Email))
	if authReq.Email == "" {
		respondError(w, http.StatusBadRequest, "Email is required")
		return
	}

	now := time.Now().UTC()

	var user models.ForumUser
	err := r.db.Where("email = ?", authReq.Email).First(&user).Error
	if err != nil {
		if authReq.Name == "" {
			respondError(w, http.StatusBadRequest, "Name is required for new forum accounts")
			return
		}
		user = models.ForumUser{
			Email: authReq.Email,
			Name:  authReq.Name,
			Role:  models.ForumRole(authReq.Role),
		}
		if user.Role == "" {
			user.Role = models.ForumRoleFarmer
		}
		if err := r.db.Create(&user).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to create forum account")
			return
		}
	}
	user.LastLogin = &now
	r.db.Model(&user).Update("last_login", now)

	token, err := utils.GenerateForumToken(&user, r.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"kind":  utils.SubjectForum,
		"user":  user,
	})
}
