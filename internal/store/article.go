// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

// ArticleStore handles all article-related database operations. Likes and
// comments are written with field-level atomic statements, never
// load-mutate-save, so concurrent engagement updates cannot overwrite
// each other.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// DefaultPageSize is the feed page size when the client does not ask for one.
const DefaultPageSize = 5

const articleColumns = `id, title, body, image_url, category, author_id, likes, status, created_at, updated_at`

func scanArticle(scanner interface{ Scan(...any) error }) (*models.Article, error) {
	a := &models.Article{}
	err := scanner.Scan(
		&a.ID, &a.Title, &a.Body, &a.ImageURL, &a.Category,
		&a.AuthorID, &a.Likes, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ArticleStore) collect(rows *sql.Rows) ([]models.Article, error) {
	defer rows.Close()
	var items []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// Create inserts a new article with status pending. The author reference
// is fixed here and never updated afterwards.
func (s *ArticleStore) Create(title, body, category string, imageURL *string, authorID uuid.UUID) (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRow(`
		INSERT INTO articles (title, body, image_url, category, author_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+articleColumns+`
	`, title, body, imageURL, category, authorID))
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return a, nil
}

// FindByID retrieves an article with its comments. Returns nil if not found.
func (s *ArticleStore) FindByID(id uuid.UUID) (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRow(`
		SELECT `+articleColumns+`
		FROM articles WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}

	a.Comments, err = s.comments(id)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// List returns one page of the feed, newest first, plus the total count.
func (s *ArticleStore) List(page, limit int) ([]models.Article, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}

	rows, err := s.db.Query(`
		SELECT `+articleColumns+`
		FROM articles
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	items, err := s.collect(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}
	return items, total, nil
}

// Search returns articles whose title or body contains the query,
// case-insensitively, newest first.
func (s *ArticleStore) Search(query string) ([]models.Article, error) {
	rows, err := s.db.Query(`
		SELECT `+articleColumns+`
		FROM articles
		WHERE title ILIKE '%' || $1 || '%' OR body ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
	`, query)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	return s.collect(rows)
}

// Filter returns articles matching the given category and/or author.
// Empty category or nil author means "any".
func (s *ArticleStore) Filter(category string, authorID *uuid.UUID) ([]models.Article, error) {
	rows, err := s.db.Query(`
		SELECT `+articleColumns+`
		FROM articles
		WHERE ($1 = '' OR category = $1)
		  AND ($2::uuid IS NULL OR author_id = $2)
		ORDER BY created_at DESC
	`, category, authorID)
	if err != nil {
		return nil, fmt.Errorf("filter articles: %w", err)
	}
	return s.collect(rows)
}

// UpdateContent replaces the author-owned content fields. Blank fields
// keep their current value. The author and status columns are untouched.
func (s *ArticleStore) UpdateContent(id uuid.UUID, title, body, category string, imageURL *string) (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRow(`
		UPDATE articles SET
			title      = COALESCE(NULLIF($2, ''), title),
			body       = COALESCE(NULLIF($3, ''), body),
			category   = COALESCE(NULLIF($4, ''), category),
			image_url  = COALESCE($5, image_url),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+articleColumns+`
	`, id, title, body, category, imageURL))
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return a, nil
}

// Delete removes an article. Comments cascade at the schema level.
func (s *ArticleStore) Delete(id uuid.UUID) error {
	if _, err := s.db.Exec(`DELETE FROM articles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// SetStatus moves the article to the given moderation state.
func (s *ArticleStore) SetStatus(id uuid.UUID, status models.ArticleStatus) (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRow(`
		UPDATE articles SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+articleColumns+`
	`, id, status))
	if err != nil {
		return nil, fmt.Errorf("set article status: %w", err)
	}
	return a, nil
}

// IncrementLikes bumps the like counter atomically and returns the new count.
func (s *ArticleStore) IncrementLikes(id uuid.UUID) (int, error) {
	var likes int
	err := s.db.QueryRow(`
		UPDATE articles SET likes = likes + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING likes
	`, id).Scan(&likes)
	if err != nil {
		return 0, fmt.Errorf("increment likes: %w", err)
	}
	return likes, nil
}

// AddComment appends a comment and returns the article's full comment list.
func (s *ArticleStore) AddComment(articleID, userID uuid.UUID, text string) ([]models.Comment, error) {
	_, err := s.db.Exec(`
		INSERT INTO comments (article_id, user_id, text)
		VALUES ($1, $2, $3)
	`, articleID, userID, text)
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return s.comments(articleID)
}

// comments returns an article's comments in insertion order.
func (s *ArticleStore) comments(articleID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT id, article_id, user_id, text, created_at
		FROM comments
		WHERE article_id = $1
		ORDER BY created_at ASC
	`, articleID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.ArticleID, &c.UserID, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}
