// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{Validation("x"), http.StatusBadRequest},
		{Authentication("x"), http.StatusUnauthorized},
		{Authorization("x"), http.StatusForbidden},
		{NotFound("x"), http.StatusNotFound},
		{Conflict("x"), http.StatusConflict},
		{Internal("x"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.err.Status(); got != tt.want {
			t.Errorf("kind %d status: got %d, want %d", tt.err.Kind, got, tt.want)
		}
	}
}

func TestFrom(t *testing.T) {
	e := NotFound("News not found")

	if got := From(e); got != e {
		t.Errorf("From(tagged): got %v, want %v", got, e)
	}

	// A tagged error survives wrapping.
	wrapped := fmt.Errorf("handler: %w", e)
	if got := From(wrapped); got != e {
		t.Errorf("From(wrapped): got %v, want %v", got, e)
	}

	if got := From(errors.New("plain")); got != nil {
		t.Errorf("From(plain): got %v, want nil", got)
	}
	if got := From(nil); got != nil {
		t.Errorf("From(nil): got %v, want nil", got)
	}
}

func TestErrorMessage(t *testing.T) {
	e := Conflict("User with this email already exists")
	if e.Error() != "User with this email already exists" {
		t.Errorf("message: got %q", e.Error())
	}
}
