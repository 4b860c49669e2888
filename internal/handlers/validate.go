// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for article and comment fields.
const (
	maxTitleLen    = 300
	maxBodyLen     = 100_000
	maxCategoryLen = 100
	maxCommentLen  = 2_000
)

// validateArticle checks article inputs and returns the first error found.
// Empty strings are only rejected when required is true, so updates can
// send partial payloads.
func validateArticle(title, body, category string, required bool) string {
	title = strings.TrimSpace(title)
	if required && title == "" {
		return "Title is required"
	}
	if required && strings.TrimSpace(body) == "" {
		return "Content is required"
	}
	if required && strings.TrimSpace(category) == "" {
		return "Category is required"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)"
	}
	if utf8.RuneCountInString(body) > maxBodyLen {
		return "Content is too long (max 100,000 characters)"
	}
	if utf8.RuneCountInString(category) > maxCategoryLen {
		return "Category is too long (max 100 characters)"
	}
	return ""
}

// validateComment checks a comment body.
func validateComment(text string) string {
	if strings.TrimSpace(text) == "" {
		return "Comment cannot be empty"
	}
	if utf8.RuneCountInString(text) > maxCommentLen {
		return "Comment is too long (max 2,000 characters)"
	}
	return ""
}
