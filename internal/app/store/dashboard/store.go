// internal/app/store/dashboard/store.go
package dashboard

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sipelita/dashboard/internal/app/system/apiclient"
	"github.com/sipelita/dashboard/internal/domain/models"
)

// Store reads the summary counters shown on the landing dashboards.
type Store struct {
	c *apiclient.Client
}

// New creates a Store over a session-bound client.
func New(c *apiclient.Client) *Store {
	return &Store{c: c}
}

func (s *Store) object(ctx context.Context, path string, q url.Values, out any) error {
	b, err := s.c.GetBytes(ctx, path, q)
	if err != nil {
		return err
	}
	if err := apiclient.DecodeObject(b, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Stats returns the pusdatin headline counters for year.
func (s *Store) Stats(ctx context.Context, year int) (models.DashboardStats, error) {
	var out models.DashboardStats
	err := s.object(ctx, "/api/pusdatin/dashboard/stats", url.Values{"year": {strconv.Itoa(year)}}, &out)
	return out, err
}

// Notifications returns the pusdatin banner texts for year.
func (s *Store) Notifications(ctx context.Context, year int) (models.Notifications, error) {
	var out models.Notifications
	err := s.object(ctx, "/api/pusdatin/dashboard/notifications", url.Values{"year": {strconv.Itoa(year)}}, &out)
	return out, err
}

// AdminStats returns the account counters for the admin dashboard.
func (s *Store) AdminStats(ctx context.Context) (models.AdminStats, error) {
	var out models.AdminStats
	err := s.object(ctx, "/api/admin/dashboard", nil, &out)
	return out, err
}
