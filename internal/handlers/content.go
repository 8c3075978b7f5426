package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rangbot-io/rangbotgo/internal/models"
	"github.com/rangbot-io/rangbotgo/internal/provisioning"
)

// listProducts returns the active package listings for the landing page
func (r *Router) listProducts(w http.ResponseWriter, req *http.Request) {
	var products []models.ProductInfo
	if err := r.db.Where("is_active = ?", true).Order("price").Find(&products).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	type productView struct {
		models.ProductInfo
		FeatureList []string `json:"featureList"`
	}
	out := make([]productView, 0, len(products))
	for i := range products {
		out = append(out, productView{ProductInfo: products[i], FeatureList: products[i].FeatureList()})
	}

	respondJSON(w, http.StatusOK, out)
}

// UpdateProductRequest carries the admin-editable listing fields
type UpdateProductRequest struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	Features    string   `json:"features"`
	IsActive    *bool    `json:"isActive"`
}

// updateProduct edits one package listing, keyed by package type
func (r *Router) updateProduct(w http.ResponseWriter, req *http.Request) {
	packageType := models.PackageType(mux.Vars(req)["packageType"])
	if packageType != models.PackageBasic && packageType != models.PackageProfessional {
		respondError(w, http.StatusBadRequest, "Unknown package type")
		return
	}

	var product models.ProductInfo
	if err := r.db.Where("package_type = ?", packageType).First(&product).Error; err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	var update UpdateProductRequest
	if err := json.NewDecoder(req.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if name := strings.TrimSpace(update.Name); name != "" {
		product.Name = name
	}
	if update.Price != nil {
		if *update.Price < 0 {
			respondError(w, http.StatusBadRequest, "Price cannot be negative")
			return
		}
		product.Price = *update.Price
	}
	if update.Description != "" {
		product.Description = update.Description
	}
	if update.Features != "" {
		product.Features = update.Features
	}
	if update.IsActive != nil {
		product.IsActive = *update.IsActive
	}

	staffID, hasStaff := staffIDFromRequest(req)
	if hasStaff {
		product.UpdatedByID = &staffID
	}

	if err := r.db.Save(&product).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	if hasStaff {
		_ = r.rec.Record(r.db.DB, provisioning.Entry{
			Action:      models.ActionProductUpdated,
			Description: "Product listing updated: " + product.Name,
			PerformedBy: &staffID,
			Metadata: map[string]interface{}{
				"packageType": string(product.PackageType),
				"price":       product.Price,
			},
		})
	}

	respondJSON(w, http.StatusOK, product)
}

// listFAQs returns the active FAQ entries in display order
func (r *Router) listFAQs(w http.ResponseWriter, req *http.Request) {
	var faqs []models.FAQ
	if err := r.db.Where("is_active = ?", true).
		Order("display_order, id").Find(&faqs).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch FAQs")
		return
	}
	respondJSON(w, http.StatusOK, faqs)
}

// FAQRequest carries an FAQ create/update payload
type FAQRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Order    *int   `json:"order"`
	IsActive *bool  `json:"isActive"`
}

func (r *Router) createFAQ(w http.ResponseWriter, req *http.Request) {
	var faqReq FAQRequest
	if err := json.NewDecoder(req.Body).Decode(&faqReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if strings.TrimSpace(faqReq.Question) == "" || strings.TrimSpace(faqReq.Answer) == "" {
		respondError(w, http.StatusBadRequest, "Question and answer are required")
		return
	}

	faq := models.FAQ{
		Question: strings.TrimSpace(faqReq.Question),
		Answer:   faqReq.Answer,
		IsActive: true,
	}
	if faqReq.Order != nil {
		faq.Order = *faqReq.Order
	}
	if faqReq.IsActive != nil {
		faq.IsActive = *faqReq.IsActive
	}

	if err := r.db.Create(&faq).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create FAQ")
		return
	}
	respondJSON(w, http.StatusCreated, faq)
}

func (r *Router) updateFAQ(w http.ResponseWriter, req *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid FAQ ID")
		return
	}

	var faq models.FAQ
	if err := r.db.First(&faq, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "FAQ not found")
		return
	}

	var faqReq FAQRequest
	if err := json.NewDecoder(req.Body).Decode(&faqReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if q := strings.TrimSpace(faqReq.Question); q != "" {
		faq.Question = q
	}
	if faqReq.Answer != "" {
		faq.Answer = faqReq.Answer
	}
	if faqReq.Order != nil {
		faq.Order = *faqReq.Order
	}
	if faqReq.IsActive != nil {
		faq.IsActive = *faqReq.IsActive
	}

	if err := r.db.Save(&faq).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update FAQ")
		return
	}
	respondJSON(w, http.StatusOK, faq)
}

func (r *Router) deleteFAQ(w http.ResponseWriter, req *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid FAQ ID")
		return
	}

	result := r.db.Delete(&models.FAQ{}, id)
	if result.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete FAQ")
		return
	}
	if result.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "FAQ not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "FAQ deleted"})
}

// listArticles returns published articles, newest first
func (r *Router) listArticles(w http.ResponseWriter, req *http.Request) {
	var articles []models.Article
	if err := r.db.Where("is_published = ?", true).
		Order("created_at DESC").Limit(50).Find(&articles).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch articles")
		return
	}
	respondJSON(w, http.StatusOK, articles)
}

func (r *Router) getArticle(w http.ResponseWriter, req *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid article ID")
		return
	}

	var article models.Article
	if err := r.db.Where("id = ? AND is_published = ?", id, true).First(&article).Error; err != nil {
		respondError(w, http.StatusNotFound, "Article not found")
		return
	}
	respondJSON(w, http.StatusOK, article)
}

// ArticleRequest carries an article create/update payload
type ArticleRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	ImageURL    string `json:"imageUrl"`
	IsPublished *bool  `json:"isPublished"`
}

func (r *Router) createArticle(w http.ResponseWriter, req *http.Request) {
	var artReq ArticleRequest
	if err := json.NewDecoder(req.Body).Decode(&artReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if strings.TrimSpace(artReq.Title) == "" || strings.TrimSpace(artReq.Content) == "" {
		respondError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	article := models.Article{
		Title:    strings.TrimSpace(artReq.Title),
		Content:  artReq.Content,
		ImageURL: strings.TrimSpace(artReq.ImageURL),
	}
	if artReq.IsPublished != nil {
		article.IsPublished = *artReq.IsPublished
	}
	if staffID, ok := staffIDFromRequest(req); ok {
		article.CreatedByID = &staffID
	}

	if err := r.db.Create(&article).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create article")
		return
	}
	respondJSON(w, http.StatusCreated, article)
}

func (r *Router) updateArticle(w http.ResponseWriter, req *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid article ID")
		return
	}

	var article models.Article
	if err := r.db.First(&article, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Article not found")
		return
	}

	var artReq ArticleRequest
	if err := json.NewDecoder(req.Body).Decode(&artReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if t := strings.TrimSpace(artReq.Title); t != "" {
		article.Title = t
	}
	if artReq.Content != "" {
		article.Content = artReq.Content
	}
	if artReq.ImageURL != "" {
		article.ImageURL = strings.TrimSpace(artReq.ImageURL)
	}
	if artReq.IsPublished != nil {
		article.IsPublished = *artReq.IsPublished
	}

	if err := r.db.Save(&article).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update article")
		return
	}
	respondJSON(w, http.StatusOK, article)
}

func (r *Router) deleteArticle(w http.ResponseWriter, req *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid article ID")
		return
	}

	result := r.db.Delete(&models.Article{}, id)
	if result.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete article")
		return
	}
	if result.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Article not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Article deleted"})
}
