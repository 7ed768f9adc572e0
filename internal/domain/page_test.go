package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/guestbook/internal/domain"
)

func intPtr(i int) *int { return &i }

func TestNewPaginationParams(t *testing.T) {
	tests := []struct {
		name        string
		page, limit *int
		want        domain.PaginationParams
	}{
		{"defaults", nil, nil, domain.PaginationParams{Page: 1, Limit: 20}},
		{"explicit", intPtr(3), intPtr(10), domain.PaginationParams{Page: 3, Limit: 10}},
		{"limit capped", nil, intPtr(500), domain.PaginationParams{Page: 1, Limit: 100}},
		{"non-positive ignored", intPtr(0), intPtr(-5), domain.PaginationParams{Page: 1, Limit: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NewPaginationParams(tt.page, tt.limit))
		})
	}
}

func TestPaginationParams_Offset(t *testing.T) {
	assert.Equal(t, 0, domain.PaginationParams{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, domain.PaginationParams{Page: 3, Limit: 20}.Offset())
}
