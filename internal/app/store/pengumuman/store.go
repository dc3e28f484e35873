// internal/app/store/pengumuman/store.go
package pengumuman

import (
	"context"
	"errors"
	"fmt"

	"github.com/sipelita/dashboard/internal/app/system/apiclient"
	"github.com/sipelita/dashboard/internal/domain/models"
)

// Tahap keys of the announcement endpoints, in pipeline order.
const (
	TahapSLHD        = "penilaian_slhd"
	TahapPenghargaan = "penilaian_penghargaan"
	TahapValidasi1   = "validasi_1"
	TahapValidasi2   = "validasi_2"
	TahapWawancara   = "wawancara"
)

// Tahaps lists the announcement stages shown as tabs on the DLH result page.
var Tahaps = []string{TahapSLHD, TahapPenghargaan, TahapValidasi1, TahapValidasi2, TahapWawancara}

var tahapLabels = map[string]string{
	TahapSLHD:        "Penilaian SLHD",
	TahapPenghargaan: "Penilaian Penghargaan",
	TahapValidasi1:   "Validasi 1",
	TahapValidasi2:   "Validasi 2",
	TahapWawancara:   "Wawancara & Nilai Akhir",
}

// TahapLabel returns the tab label of tahap.
func TahapLabel(tahap string) string {
	if l, ok := tahapLabels[tahap]; ok {
		return l
	}
	return tahap
}

// ParseTahap returns tahap when known, otherwise the SLHD stage.
func ParseTahap(tahap string) string {
	if _, ok := tahapLabels[tahap]; ok {
		return tahap
	}
	return TahapSLHD
}

// Store reads the published results of the signed-in regional agency.
type Store struct {
	c *apiclient.Client
}

// New creates a Store over a session-bound client.
func New(c *apiclient.Client) *Store {
	return &Store{c: c}
}

func (s *Store) object(ctx context.Context, path string, out any) error {
	b, err := s.c.GetBytes(ctx, path, nil)
	if err != nil {
		return err
	}
	if err := apiclient.DecodeObject(b, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Timeline returns the yearly stage timeline.
func (s *Store) Timeline(ctx context.Context) (models.Timeline, error) {
	var out models.Timeline
	err := s.object(ctx, "/api/dinas/pengumuman/timeline", &out)
	if out.Items == nil {
		out.Items = []models.TimelineItem{}
	}
	return out, err
}

// Result returns the announced result of one stage. A 404 or an
// unpublished announcement both yield Available=false.
func (s *Store) Result(ctx context.Context, year int, tahap string) (models.Announcement, error) {
	var out models.Announcement
	err := s.object(ctx, fmt.Sprintf("/api/dinas/pengumuman/%d/%s", year, ParseTahap(tahap)), &out)
	if errors.Is(err, apiclient.ErrNotFound) {
		return models.Announcement{}, nil
	}
	if err != nil {
		return models.Announcement{}, err
	}
	if out.Hasil == nil {
		out.Available = false
	}
	return out, nil
}

// DetailSLHD returns the per-chapter SLHD breakdown.
func (s *Store) DetailSLHD(ctx context.Context) (models.DetailSLHD, error) {
	var out models.DetailSLHD
	err := s.object(ctx, "/api/dinas/pengumuman/detail-slhd", &out)
	if errors.Is(err, apiclient.ErrNotFound) {
		return models.DetailSLHD{}, nil
	}
	return out, err
}

// DetailPenghargaan returns the per-award breakdown.
func (s *Store) DetailPenghargaan(ctx context.Context) (models.DetailPenghargaan, error) {
	var out models.DetailPenghargaan
	err := s.object(ctx, "/api/dinas/pengumuman/detail-penghargaan", &out)
	if errors.Is(err, apiclient.ErrNotFound) {
		return models.DetailPenghargaan{}, nil
	}
	return out, err
}
