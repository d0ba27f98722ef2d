package inci

import (
	"context"
	"errors"
	"strings"

	domain "github.com/glowmance/glowmance-backend/internal/domain/inci"
)

var ErrProductRequired = errors.New("product name is required")

type Service struct {
	client domain.Client
}

func NewService(client domain.Client) *Service {
	return &Service{client: client}
}

// Lookup ingredient breakdown untuk satu nama produk.
func (s *Service) Lookup(ctx context.Context, product string) (*domain.ProductInfo, error) {
	if strings.TrimSpace(product) == "" {
		return nil, ErrProductRequired
	}
	return s.client.ProductInfo(ctx, product)
}
