// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"newsdesk/internal/apierr"
	"newsdesk/internal/authz"
	"newsdesk/internal/cache"
	"newsdesk/internal/mailer"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/response"
	"newsdesk/internal/storage"
	"newsdesk/internal/store"
)

// maxUploadSize caps the multipart body of article creation at 10 MB.
const maxUploadSize = 10 << 20

// News groups the article handlers: public feed, author publishing,
// moderation, and reader engagement.
type News struct {
	articles *store.ArticleStore
	users    *store.UserStore
	storage  *storage.Client
	notifier mailer.Notifier
	feed     *cache.FeedCache
}

// NewNews creates a new News handler group. storage and feed may be nil;
// uploads and caching are then disabled.
func NewNews(articles *store.ArticleStore, users *store.UserStore, storageClient *storage.Client, notifier mailer.Notifier, feed *cache.FeedCache) *News {
	return &News{
		articles: articles,
		users:    users,
		storage:  storageClient,
		notifier: notifier,
		feed:     feed,
	}
}

// Health reports liveness. Public, mounted under the news prefix.
func (h *News) Health(w http.ResponseWriter, r *http.Request) {
	response.Raw(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Search returns articles whose title or content matches the query,
// case-insensitively.
func (h *News) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		response.Err(w, apierr.Validation("Search query is required"))
		return
	}

	items, err := h.articles.Search(query)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Raw(w, http.StatusOK, nonNil(items))
}

// Filter returns articles matching category and/or author.
func (h *News) Filter(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	var authorID *uuid.UUID
	if raw := r.URL.Query().Get("author"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Err(w, apierr.Validation("Invalid author id"))
			return
		}
		authorID = &id
	}

	items, err := h.articles.Filter(category, authorID)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Raw(w, http.StatusOK, nonNil(items))
}

// feedPage is the paginated feed response body.
type feedPage struct {
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	TotalNews  int              `json:"totalNews"`
	News       []models.Article `json:"news"`
}

// List returns one page of the feed, newest first. Pages are served from
// the feed cache when possible; any article mutation invalidates it.
func (h *News) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", store.DefaultPageSize)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = store.DefaultPageSize
	}

	key := cache.PageKey(page, limit)
	if body, ok := h.feed.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
		return
	}

	items, total, err := h.articles.List(page, limit)
	if err != nil {
		response.Err(w, err)
		return
	}

	resp := feedPage{
		Page:       page,
		TotalPages: (total + limit - 1) / limit,
		TotalNews:  total,
		News:       nonNil(items),
	}

	body, err := json.Marshal(resp)
	if err != nil {
		response.Err(w, err)
		return
	}
	h.feed.Set(r.Context(), key, body)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// GetOne returns a single article with its comments.
func (h *News) GetOne(w http.ResponseWriter, r *http.Request) {
	article, ok := h.fetch(w, r)
	if !ok {
		return
	}
	response.Raw(w, http.StatusOK, article)
}

// Create publishes a new article with status pending and notifies the
// author's subscribers. The notification is dispatched asynchronously;
// its failure never fails the request.
func (h *News) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.Err(w, apierr.Validation("Invalid multipart form"))
		return
	}
	title := r.FormValue("title")
	body := r.FormValue("content")
	category := r.FormValue("category")
	if msg := validateArticle(title, body, category, true); msg != "" {
		response.Err(w, apierr.Validation(msg))
		return
	}

	var imageURL *string
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		url, err := h.uploadImage(r, file, header)
		if err != nil {
			response.Err(w, err)
			return
		}
		imageURL = url
	}

	article, err := h.articles.Create(title, body, category, imageURL, claims.UserID)
	if err != nil {
		response.Err(w, err)
		return
	}
	h.feed.Invalidate(r.Context())

	h.notifySubscribers(claims.UserID, claims.Email, article)

	response.Raw(w, http.StatusCreated, map[string]any{
		"message": "News published successfully & subscribers notified!",
		"news":    article,
	})
}

// Update modifies an article's content fields. Only the owning author may
// update; a missing article is 404 before ownership is ever considered.
func (h *News) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())

	article, ok := h.fetch(w, r)
	if !ok {
		return
	}
	if !authz.Allowed(claims.Role, claims.UserID, authz.ActionUpdateArticle, article.AuthorID) {
		response.Err(w, apierr.Authorization("Not authorized"))
		return
	}

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apierr.Validation("Invalid request body"))
		return
	}
	if msg := validateArticle(req.Title, req.Content, req.Category, false); msg != "" {
		response.Err(w, apierr.Validation(msg))
		return
	}

	updated, err := h.articles.UpdateContent(article.ID, req.Title, req.Content, req.Category, nil)
	if err != nil {
		response.Err(w, err)
		return
	}
	h.feed.Invalidate(r.Context())

	response.Raw(w, http.StatusOK, map[string]any{
		"message": "News updated successfully",
		"news":    updated,
	})
}

// Delete removes an article. Only the owning author may delete.
func (h *News) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())

	article, ok := h.fetch(w, r)
	if !ok {
		return
	}
	if !authz.Allowed(claims.Role, claims.UserID, authz.ActionDeleteArticle, article.AuthorID) {
		response.Err(w, apierr.Authorization("Not authorized"))
		return
	}

	if err := h.articles.Delete(article.ID); err != nil {
		response.Err(w, err)
		return
	}
	h.feed.Invalidate(r.Context())

	response.Raw(w, http.StatusOK, map[string]any{"message": "News deleted successfully"})
}

// Approve transitions an article to approved or rejected. Moderators can
// re-set the status; transitions are one-way only per request.
func (h *News) Approve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status models.ArticleStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apierr.Validation("Invalid request body"))
		return
	}
	if req.Status != models.StatusApproved && req.Status != models.StatusRejected {
		response.Err(w, apierr.Validation("Invalid status value"))
		return
	}

	article, ok := h.fetch(w, r)
	if !ok {
		return
	}

	updated, err := h.articles.SetStatus(article.ID, req.Status)
	if err != nil {
		response.Err(w, err)
		return
	}
	h.feed.Invalidate(r.Context())

	response.Raw(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("News successfully %s", req.Status),
		"news":    updated,
	})
}

// Like increments the article's like counter atomically.
func (h *News) Like(w http.ResponseWriter, r *http.Request) {
	article, ok := h.fetch(w, r)
	if !ok {
		return
	}

	likes, err := h.articles.IncrementLikes(article.ID)
	if err != nil {
		response.Err(w, err)
		return
	}
	h.feed.Invalidate(r.Context())

	response.Raw(w, http.StatusOK, map[string]any{
		"message": "News liked!",
		"likes":   likes,
	})
}

// Comment appends a reader comment to the article.
func (h *News) Comment(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apierr.Validation("Invalid request body"))
		return
	}
	if msg := validateComment(req.Text); msg != "" {
		response.Err(w, apierr.Validation(msg))
		return
	}

	article, ok := h.fetch(w, r)
	if !ok {
		return
	}

	comments, err := h.articles.AddComment(article.ID, claims.UserID, req.Text)
	if err != nil {
		response.Err(w, err)
		return
	}
	h.feed.Invalidate(r.Context())

	response.Raw(w, http.StatusOK, map[string]any{
		"message":  "Comment added!",
		"comments": comments,
	})
}

// fetch resolves the {id} URL parameter into an article, writing the 400
// or 404 itself. The bool reports whether the caller should continue.
func (h *News) fetch(w http.ResponseWriter, r *http.Request) (*models.Article, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, apierr.Validation("Invalid article id"))
		return nil, false
	}
	article, err := h.articles.FindByID(id)
	if err != nil {
		response.Err(w, err)
		return nil, false
	}
	if article == nil {
		response.Err(w, apierr.NotFound("News not found"))
		return nil, false
	}
	return article, true
}

// allowedImageTypes mirrors the formats the upload sink accepts.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// uploadImage stores the article image and returns its public URL.
// Returns (nil, nil) when storage is not configured.
func (h *News) uploadImage(r *http.Request, file multipart.File, header *multipart.FileHeader) (*string, error) {
	if h.storage == nil {
		slog.Warn("image upload skipped, storage not configured", "filename", header.Filename)
		return nil, nil
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return nil, apierr.Validation("Only jpeg and png images are allowed")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := fmt.Sprintf("news-images/%s%s", uuid.New(), ext)

	url, err := h.storage.UploadImage(r.Context(), key, contentType, file, header.Size)
	if err != nil {
		slog.Error("image upload failed", "key", key, "error", err)
		return nil, apierr.Internal("Image upload failed")
	}
	return &url, nil
}

// notifySubscribers dispatches the publish notification to everyone
// subscribed to the author. Best-effort, off the request path.
func (h *News) notifySubscribers(authorID uuid.UUID, authorEmail string, article *models.Article) {
	emails, err := h.users.SubscriberEmails(authorID)
	if err != nil {
		slog.Error("subscriber lookup failed", "author", authorID, "error", err)
		return
	}
	mailer.Dispatch(h.notifier, emails,
		fmt.Sprintf("New Article Published: %s", article.Title),
		fmt.Sprintf("Check out the latest news by %s: %s\n\n%s", authorEmail, article.Title, article.Body),
	)
}

// nonNil makes empty query results serialize as [] instead of null.
func nonNil(items []models.Article) []models.Article {
	if items == nil {
		return []models.Article{}
	}
	return items
}

// queryInt parses an integer query parameter with a fallback.
func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
