// internal/app/store/wilayah/store.go
package wilayah

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/sipelita/dashboard/internal/app/system/apiclient"
	"github.com/sipelita/dashboard/internal/domain/models"
)

// Store reads region reference data.
type Store struct {
	c *apiclient.Client
}

// New creates a Store.
func New(c *apiclient.Client) *Store {
	return &Store{c: c}
}

// Provinces lists provinces sorted by display name. 404 yields none.
func (s *Store) Provinces(ctx context.Context) ([]models.Province, error) {
	b, err := s.c.GetBytes(ctx, "/api/wilayah/provinces", nil)
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			return []models.Province{}, nil
		}
		return nil, err
	}
	out, err := apiclient.DecodeList[models.Province](b)
	if err != nil {
		return nil, fmt.Errorf("decode provinces: %w", err)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return text.Fold(out[i].DisplayName()) < text.Fold(out[j].DisplayName())
	})
	return out, nil
}

// ProvinceNames returns the sorted display names, for filter dropdowns.
func ProvinceNames(ps []models.Province) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		if n := p.DisplayName(); n != "" {
			out = append(out, n)
		}
	}
	return out
}
