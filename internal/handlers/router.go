package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rangbot-io/rangbotgo/internal/ai"
	"github.com/rangbot-io/rangbotgo/internal/buildinfo"
	"github.com/rangbot-io/rangbotgo/internal/config"
	"github.com/rangbot-io/rangbotgo/internal/database"
	"github.com/rangbot-io/rangbotgo/internal/middleware"
	"github.com/rangbot-io/rangbotgo/internal/provisioning"
	"github.com/rangbot-io/rangbotgo/internal/utils"
	"github.com/rangbot-io/rangbotgo/internal/websocket"
)

// Router wraps the mux router and the application services
type Router struct {
	*mux.Router
	db       *database.DB
	cfg      *config.Config
	svc      *provisioning.Service
	rec      provisioning.Recorder
	feed     *websocket.Hub
	detector *ai.Detector
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, feed *websocket.Hub) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		db:     db,
		cfg:    cfg,
		svc:    provisioning.NewService(db.DB),
		feed:   feed,
	}

	auth := middleware.Auth(cfg.JWTSecret)

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Public landing-page API
	r.HandleFunc("/api/products", r.listProducts).Methods("GET")
	r.HandleFunc("/api/faqs", r.listFAQs).Methods("GET")
	r.HandleFunc("/api/articles", r.listArticles).Methods("GET")
	r.HandleFunc("/api/articles/{id}", r.getArticle).Methods("GET")
	r.HandleFunc("/api/orders", r.createOrder).Methods("POST")
	r.HandleFunc("/api/contact", r.createContactMessage).Methods("POST")

	// Auth routes
	r.HandleFunc("/auth/login", r.login).Methods("POST")
	r.HandleFunc("/auth/register", r.registerMember).Methods("POST")
	r.HandleFunc("/auth/forum", r.forumAuth).Methods("POST")

	// Forum (public read, token-gated write)
	r.HandleFunc("/api/forum/posts", r.listForumPosts).Methods("GET")
	r.HandleFunc("/api/forum/posts/{id}", r.getForumPost).Methods("GET")
	forum := r.PathPrefix("/api/forum").Subrouter()
	forum.Use(auth, middleware.RequireKind(utils.SubjectForum))
	forum.HandleFunc("/posts", r.createForumPost).Methods("POST")
	forum.HandleFunc("/posts/{id}", r.updateForumPost).Methods("PUT")
	forum.HandleFunc("/posts/{id}", r.deleteForumPost).Methods("DELETE")
	forum.HandleFunc("/posts/{id}/comments", r.createForumComment).Methods("POST")

	// Member portal
	member := r.PathPrefix("/api/member").Subrouter()
	member.Use(auth, middleware.RequireKind(utils.SubjectMember))
	member.HandleFunc("/dashboard", r.memberDashboard).Methods("GET")
	member.HandleFunc("/profile", r.memberProfile).Methods("GET")
	member.HandleFunc("/profile", r.updateMemberProfile).Methods("PUT")
	member.HandleFunc("/devices", r.listMemberDevices).Methods("GET")
	member.HandleFunc("/devices/{id}", r.getMemberDevice).Methods("GET")
	member.HandleFunc("/devices/{id}", r.updateMemberDevice).Methods("PUT")
	member.HandleFunc("/devices/{id}/detections", r.listDetections).Methods("GET")
	member.HandleFunc("/devices/{id}/detections", r.createManualDetection).Methods("POST")
	member.HandleFunc("/notifications", r.listNotifications).Methods("GET")
	member.HandleFunc("/notifications/{id}/read", r.markNotificationRead).Methods("POST")

	// Staff tools (admin + customer service)
	staff := r.PathPrefix("/api/admin").Subrouter()
	staff.Use(auth, middleware.RequireKind(utils.SubjectStaff))
	staff.HandleFunc("/dashboard", r.staffDashboard).Methods("GET")
	staff.HandleFunc("/orders", r.listOrders).Methods("GET")
	staff.HandleFunc("/orders/{id}", r.getOrder).Methods("GET")
	staff.HandleFunc("/orders/{id}/labels.pdf", r.orderLabelsPDF).Methods("GET")
	staff.HandleFunc("/members", r.listMembers).Methods("GET")
	staff.HandleFunc("/activity", r.listActivity).Methods("GET")
	staff.HandleFunc("/messages", r.listContactMessages).Methods("GET")
	staff.HandleFunc("/messages/{id}/read", r.markMessageRead).Methods("POST")
	staff.HandleFunc("/messages/{id}/reply", r.replyContactMessage).Methods("POST")
	staff.HandleFunc("/messages/{id}/archive", r.archiveContactMessage).Methods("POST")
	staff.HandleFunc("/faqs", r.createFAQ).Methods("POST")
	staff.HandleFunc("/faqs/{id}", r.updateFAQ).Methods("PUT")
	staff.HandleFunc("/faqs/{id}", r.deleteFAQ).Methods("DELETE")
	staff.HandleFunc("/articles", r.createArticle).Methods("POST")
	staff.HandleFunc("/articles/{id}", r.updateArticle).Methods("PUT")
	staff.HandleFunc("/articles/{id}", r.deleteArticle).Methods("DELETE")

	// Admin-only actions
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(auth, middleware.RequireAdmin)
	admin.HandleFunc("/orders/{id}/verify", r.verifyOrder).Methods("POST")
	admin.HandleFunc("/orders/{id}/reject", r.rejectOrder).Methods("POST")
	admin.HandleFunc("/members/{id}/activate", r.activateMember).Methods("POST")
	admin.HandleFunc("/members/{id}/deactivate", r.deactivateMember).Methods("POST")
	admin.HandleFunc("/products/{packageType}", r.updateProduct).Methods("PUT")
	admin.HandleFunc("/activity", r.purgeActivity).Methods("DELETE")

	// Live activity feed for staff dashboards
	r.Handle("/ws/activity", auth(middleware.RequireKind(utils.SubjectStaff)(http.HandlerFunc(r.activityFeed)))).Methods("GET")

	return r
}

// SetDetector wires the optional AI detection analyzer
func (r *Router) SetDetector(d *ai.Detector) {
	r.detector = d
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"version":   buildinfo.Version,
		"commit":    buildinfo.CommitHash,
		"startedAt": buildinfo.StartTime,
	})
}

// activityFeed upgrades the connection and attaches it to the feed hub
func (r *Router) activityFeed(w http.ResponseWriter, req *http.Request) {
	r.feed.ServeWS(w, req)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
