package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rangbot-io/rangbotgo/internal/middleware"
	"github.com/rangbot-io/rangbotgo/internal/models"
	"github.com/rangbot-io/rangbotgo/internal/utils"
	"gorm.io/gorm"
)

var validForumCategories = map[models.ForumCategory]bool{
	models.ForumCategoryDisease:    true,
	models.ForumCategoryCare:       true,
	models.ForumCategoryExperience: true,
	models.ForumCategoryTechnical:  true,
	models.ForumCategoryGeneral:    true,
}

// forumUserFromRequest resolves the authenticated forum user from JWT claims
func (r *Router) forumUserFromRequest(w http.ResponseWriter, req *http.Request) (*models.ForumUser, bool) {
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

	var user models.ForumUser
	if err := r.db.First(&user, id).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "Account not found")
		return nil, false
	}
	return &user, true
}

// listForumPosts returns the thread listing with optional category filter
func (r *Router) listForumPosts(w http.ResponseWriter, req *http.Request) {
	query := r.db.Model(&models.ForumPost{}).Preload("Author")

	if category := req.URL.Query().Get("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.TrimSpace(req.URL.Query().Get("search")); search != "" {
		like := "%" + search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", like, like)
	}

	var posts []models.ForumPost
	if err := query.Order("created_at DESC").Limit(100).Find(&posts).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}

	type postView struct {
		models.ForumPost
		Excerpt      string `json:"excerpt"`
		CommentCount int64  `json:"commentCount"`
	}
	out := make([]postView, 0, len(posts))
	for i := range posts {
		view := postView{ForumPost: posts[i], Excerpt: posts[i].Excerpt(200)}
		r.db.Model(&models.ForumComment{}).Where("post_id = ?", posts[i].ID).Count(&view.CommentCount)
		view.Comments = nil
		out = append(out, view)
	}

	respondJSON(w, http.StatusOK, out)
}

// getForumPost returns one thread with its comments and bumps the view count
func (r *Router) getForumPost(w http.ResponseWriter, req *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var post models.ForumPost
	if err := r.db.Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Comments.Author").
		First(&post, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}

	r.db.Model(&post).Update("views", gorm.Expr("views + 1"))
	post.Views++

	respondJSON(w, http.StatusOK, post)
}

// ForumPostRequest carries a thread create/update payload
type ForumPostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

func (r *Router) createForumPost(w http.ResponseWriter, req *http.Request) {
	user, ok := r.forumUserFromRequest(w, req)
	if !ok {
		return
	}

	var postReq ForumPostRequest
	if err := json.NewDecoder(req.Body).Decode(&postReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if strings.TrimSpace(postReq.Title) == "" || strings.TrimSpace(postReq.Content) == "" {
		respondError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	category := models.ForumCategory(postReq.Category)
	if category == "" {
		category = models.ForumCategoryGeneral
	}
	if !validForumCategories[category] {
		respondError(w, http.StatusBadRequest, "Unknown category")
		return
	}

	post := models.ForumPost{
		Title:    strings.TrimSpace(postReq.Title),
		Content:  postReq.Content,
		AuthorID: user.ID,
		Category: category,
	}
	if err := r.db.Create(&post).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create post")
		return
	}
	post.Author = user

	respondJSON(w, http.StatusCreated, post)
}

// forumPostForAuthor loads a post and checks the caller wrote it
func (r *Router) forumPostForAuthor(w http.ResponseWriter, req *http.Request, user *models.ForumUser) (*models.ForumPost, bool) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return nil, false
	}

	var post models.ForumPost
	if err := r.db.First(&post, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Post not found")
		return nil, false
	}
	if post.AuthorID != user.ID {
		respondError(w, http.StatusForbidden, "You can only modify your own posts")
		return nil, false
	}
	return &post, true
}

func (r *Router) updateForumPost(w http.ResponseWriter, req *http.Request) {
	user, ok := r.forumUserFromRequest(w, req)
	if !ok {
		return
	}
	post, ok := r.forumPostForAuthor(w, req, user)
	if !ok {
		return
	}

	var postReq ForumPostRequest
	if err := json.NewDecoder(req.Body).Decode(&postReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if t := strings.TrimSpace(postReq.Title); t != "" {
		post.Title = t
	}
	if postReq.Content != "" {
		post.Content = postReq.Content
	}
	if postReq.Category != "" {
		category := models.ForumCategory(postReq.Category)
		if !validForumCategories[category] {
			respondError(w, http.StatusBadRequest, "Unknown category")
			return
		}
		post.Category = category
	}

	if err := r.db.Save(post).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update post")
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (r *Router) deleteForumPost(w http.ResponseWriter, req *http.Request) {
	user, ok := r.forumUserFromRequest(w, req)
	if !ok {
		return
	}
	post, ok := r.forumPostForAuthor(w, req, user)
	if !ok {
		return
	}

	if err := r.db.Select("Comments").Delete(post).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete post")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Post deleted"})
}

// ForumCommentRequest carries a reply payload
type ForumCommentRequest struct {
	Content string `json:"content"`
}

func (r *Router) createForumComment(w http.ResponseWriter, req *http.Request) {
	user, ok := r.forumUserFromRequest(w, req)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}
	var post models.ForumPost
	if err := r.db.First(&post, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}

	var commentReq ForumCommentRequest
	if err := json.NewDecoder(req.Body).Decode(&commentReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if strings.TrimSpace(commentReq.Content) == "" {
		respondError(w, http.StatusBadRequest, "Comment content is required")
		return
	}

	comment := models.ForumComment{
		PostID:   post.ID,
		AuthorID: user.ID,
		Content:  commentReq.Content,
	}
	if err := r.db.Create(&comment).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create comment")
		return
	}
	comment.Author = user

	respondJSON(w, http.StatusCreated, comment)
}
