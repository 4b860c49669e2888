// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"newsdesk/internal/models"
)

func mockArticleStore(t *testing.T) (*ArticleStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewArticleStore(db), mock
}

func articleRow(id, authorID uuid.UUID, title string, likes int, status models.ArticleStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "title", "body", "image_url", "category", "author_id",
		"likes", "status", "created_at", "updated_at",
	}).AddRow(id, title, "body", nil, "tech", authorID, likes, string(status), now, now)
}

func TestArticleStoreCreateDefaultsToPending(t *testing.T) {
	articles, mock := mockArticleStore(t)
	authorID := uuid.New()

	mock.ExpectQuery(`INSERT INTO articles`).
		WithArgs("Title", "body", nil, "tech", authorID).
		WillReturnRows(articleRow(uuid.New(), authorID, "Title", 0, models.StatusPending))

	a, err := articles.Create("Title", "body", "tech", nil, authorID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Status != models.StatusPending {
		t.Errorf("status: got %q, want %q", a.Status, models.StatusPending)
	}
	if a.Likes != 0 {
		t.Errorf("likes: got %d, want 0", a.Likes)
	}
}

func TestArticleStoreIncrementLikes(t *testing.T) {
	// Likes are bumped with a single UPDATE ... likes = likes + 1, so two
	// concurrent likes can never resolve to the same count.
	articles, mock := mockArticleStore(t)
	id := uuid.New()

	mock.ExpectQuery(`SET likes = likes \+ 1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"likes"}).AddRow(6))

	likes, err := articles.IncrementLikes(id)
	if err != nil {
		t.Fatalf("increment likes: %v", err)
	}
	if likes != 6 {
		t.Errorf("likes: got %d, want 6", likes)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestArticleStoreListClampsPageAndLimit(t *testing.T) {
	articles, mock := mockArticleStore(t)

	// page 0 / limit 0 fall back to page 1 with the default page size.
	mock.ExpectQuery(`ORDER BY created_at DESC`).
		WithArgs(DefaultPageSize, 0).
		WillReturnRows(articleRow(uuid.New(), uuid.New(), "One", 0, models.StatusApproved))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM articles`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	items, total, err := articles.List(0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if total != 12 {
		t.Errorf("total: got %d, want 12", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestArticleStoreListOffset(t *testing.T) {
	articles, mock := mockArticleStore(t)

	mock.ExpectQuery(`LIMIT \$1 OFFSET \$2`).
		WithArgs(5, 5).
		WillReturnRows(articleRow(uuid.New(), uuid.New(), "Six", 0, models.StatusApproved))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM articles`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	if _, _, err := articles.List(2, 5); err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestArticleStoreFindByIDMissing(t *testing.T) {
	articles, mock := mockArticleStore(t)
	id := uuid.New()

	mock.ExpectQuery(`FROM articles WHERE id`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	a, err := articles.FindByID(id)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if a != nil {
		t.Errorf("missing article should be nil, got %+v", a)
	}
}

func TestArticleStoreSetStatus(t *testing.T) {
	articles, mock := mockArticleStore(t)
	id, authorID := uuid.New(), uuid.New()

	mock.ExpectQuery(`UPDATE articles SET status`).
		WithArgs(id, models.StatusApproved).
		WillReturnRows(articleRow(id, authorID, "Title", 0, models.StatusApproved))

	a, err := articles.SetStatus(id, models.StatusApproved)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if a.Status != models.StatusApproved {
		t.Errorf("status: got %q, want %q", a.Status, models.StatusApproved)
	}
}

func TestArticleStoreAddComment(t *testing.T) {
	articles, mock := mockArticleStore(t)
	articleID, userID := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectExec(`INSERT INTO comments`).
		WithArgs(articleID, userID, "Great read").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM comments`).
		WithArgs(articleID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "article_id", "user_id", "text", "created_at"}).
			AddRow(uuid.New(), articleID, userID, "Great read", now))

	comments, err := articles.AddComment(articleID, userID, "Great read")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(comments))
	}
	if comments[0].Text != "Great read" {
		t.Errorf("text: got %q", comments[0].Text)
	}
}
