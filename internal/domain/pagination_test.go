package domain

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Limit(t *testing.T) {
	tests := []struct {
		name       string
		maxResults int
		want       int
	}{
		{"zero_uses_default", 0, DefaultMaxResults},
		{"negative_uses_default", -1, DefaultMaxResults},
		{"explicit", 25, 25},
		{"clamped_to_max", 5000, MaxMaxResults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PageRequest{MaxResults: tt.maxResults}
			assert.Equal(t, tt.want, p.Limit())
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	t.Run("empty_token", func(t *testing.T) {
		assert.Equal(t, 0, PageRequest{}.Offset())
	})

	t.Run("round_trip", func(t *testing.T) {
		token := EncodePageToken(42)
		assert.Equal(t, 42, PageRequest{PageToken: token}.Offset())
	})

	t.Run("garbage_token_is_zero", func(t *testing.T) {
		assert.Equal(t, 0, PageRequest{PageToken: "!!!not-base64!!!"}.Offset())
	})

	t.Run("negative_offset_token_is_zero", func(t *testing.T) {
		token := base64.URLEncoding.EncodeToString([]byte("-5"))
		assert.Equal(t, 0, PageRequest{PageToken: token}.Offset())
	})
}

func TestNextPageToken(t *testing.T) {
	t.Run("more_pages", func(t *testing.T) {
		token := NextPageToken(0, 10, 25)
		assert.NotEmpty(t, token)
		assert.Equal(t, 10, PageRequest{PageToken: token}.Offset())
	})

	t.Run("last_page", func(t *testing.T) {
		assert.Empty(t, NextPageToken(20, 10, 25))
	})
}
