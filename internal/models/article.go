// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ArticleStatus represents the moderation state of an article.
// Articles start pending and become publicly eligible once approved.
type ArticleStatus string

const (
	StatusPending  ArticleStatus = "pending"
	StatusApproved ArticleStatus = "approved"
	StatusRejected ArticleStatus = "rejected"
)

// Valid reports whether the status is a known moderation state.
func (s ArticleStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Article represents a news article. AuthorID is immutable after creation;
// content fields belong to the author, Status to the moderators, and the
// engagement fields (Likes, Comments) to every authenticated reader.
type Article struct {
	ID        uuid.UUID     `json:"id"`
	Title     string        `json:"title"`
	Body      string        `json:"content"`
	ImageURL  *string       `json:"image,omitempty"`
	Category  string        `json:"category"`
	AuthorID  uuid.UUID     `json:"author"`
	Likes     int           `json:"likes"`
	Status    ArticleStatus `json:"status"`
	Comments  []Comment     `json:"comments,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// IsApproved returns true if the article has passed moderation.
func (a *Article) IsApproved() bool {
	return a.Status == StatusApproved
}

// Comment is a single reader comment on an article. Comments are
// append-only; there is no edit or delete path.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	ArticleID uuid.UUID `json:"-"`
	UserID    uuid.UUID `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
