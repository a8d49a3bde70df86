package ecode

import (
	"net/http"
	"testing"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		code int
		want int
	}{
		{OK, http.StatusOK},
		{ParamErr, http.StatusBadRequest},
		{ServiceUnavailable, http.StatusServiceUnavailable},
		{-999, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := ToHTTPStatus(tt.code); got != tt.want {
			t.Errorf("ToHTTPStatus(%d) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestText(t *testing.T) {
	if Text(ParamErr) != "invalid parameters" {
		t.Errorf("unexpected text %q", Text(ParamErr))
	}
	if Text(-999) != Text(ServerErr) {
		t.Error("unknown codes should fall back to the server error text")
	}
}

func TestMessages(t *testing.T) {
	if got := FieldIsInvalid("epoch"); got != "epoch invalid" {
		t.Errorf("unexpected message %q", got)
	}
	if got := FieldIsInvalid(); got != "invalid" {
		t.Errorf("unexpected message %q", got)
	}
	if got := Unavailable("search engine"); got != "search engine unavailable" {
		t.Errorf("unexpected message %q", got)
	}
}
