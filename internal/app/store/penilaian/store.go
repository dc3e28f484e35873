// internal/app/store/penilaian/store.go
package penilaian

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sipelita/dashboard/internal/app/system/apiclient"
	"github.com/sipelita/dashboard/internal/app/system/stages"
	"github.com/sipelita/dashboard/internal/domain/models"
)

const base = "/api/pusdatin/penilaian"

// RoundKind selects the SLHD or award round endpoints, which share a shape.
type RoundKind string

const (
	KindSLHD        RoundKind = "slhd"
	KindPenghargaan RoundKind = "penghargaan"
)

// KindFor maps a round-bearing stage to its endpoint kind.
func KindFor(s stages.Stage) (RoundKind, bool) {
	switch s {
	case stages.SLHD:
		return KindSLHD, true
	case stages.Penghargaan:
		return KindPenghargaan, true
	}
	return "", false
}

// Store reads and mutates assessment data through the scoring API on behalf
// of one session. Reads treat 404 as "no data yet".
type Store struct {
	c *apiclient.Client
}

// New creates a Store over a session-bound client.
func New(c *apiclient.Client) *Store {
	return &Store{c: c}
}

func yearPath(parts ...any) string {
	p := base
	for _, part := range parts {
		p += "/" + fmt.Sprint(part)
	}
	return p
}

func yearQuery(year int) url.Values {
	return url.Values{"year": {strconv.Itoa(year)}}
}

// list fetches a list endpoint. 404 yields an empty list.
func list[T any](ctx context.Context, c *apiclient.Client, path string, q url.Values) ([]T, error) {
	b, err := c.GetBytes(ctx, path, q)
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			return []T{}, nil
		}
		return nil, err
	}
	rows, err := apiclient.DecodeList[T](b)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return rows, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Submissions                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// Submissions lists every agency's document submission for year.
func (s *Store) Submissions(ctx context.Context, year int) ([]models.Submission, error) {
	return list[models.Submission](ctx, s.c, base+"/submissions", yearQuery(year))
}

/*─────────────────────────────────────────────────────────────────────────────*
| SLHD and award rounds                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

// Rounds lists the upload rounds of kind for year, newest first.
func (s *Store) Rounds(ctx context.Context, kind RoundKind, year int) ([]models.Round, error) {
	rounds, err := list[models.Round](ctx, s.c, yearPath(kind, year), nil)
	if err != nil {
		return nil, err
	}
	stages.SortRounds(rounds)
	return rounds, nil
}

// ParsedSLHD lists the parsed SLHD rows of a round.
func (s *Store) ParsedSLHD(ctx context.Context, roundID int64) ([]models.ParsedSLHD, error) {
	return list[models.ParsedSLHD](ctx, s.c, yearPath(KindSLHD, "parsed", roundID), nil)
}

// ParsedAwards lists the parsed award rows of a round.
func (s *Store) ParsedAwards(ctx context.Context, roundID int64) ([]models.ParsedAward, error) {
	return list[models.ParsedAward](ctx, s.c, yearPath(KindPenghargaan, "parsed", roundID), nil)
}

// Upload sends a filled-in workbook as a new round. An empty note is not sent.
func (s *Store) Upload(ctx context.Context, kind RoundKind, year int, filename string, content io.Reader, note string) error {
	return s.c.PostMultipart(ctx, yearPath(kind, "upload", year),
		map[string]string{"catatan": note},
		apiclient.FilePart{Field: "file", Filename: filename, Content: content},
		nil)
}

// FinalizeRound locks a round.
func (s *Store) FinalizeRound(ctx context.Context, kind RoundKind, roundID int64) error {
	return s.c.Send(ctx, http.MethodPatch, yearPath(kind, "finalize", roundID), nil, nil)
}

// Template downloads the blank workbook for kind. The SLHD template depends
// on the agency type; "all" asks for the regency/city variant.
func (s *Store) Template(ctx context.Context, kind RoundKind, year int, agencyType string) (*apiclient.Download, error) {
	if kind == KindPenghargaan {
		return s.c.Download(ctx, yearPath(kind, "template", year), nil,
			fmt.Sprintf("template_penghargaan_%d.xlsx", year))
	}
	if agencyType == "" || agencyType == "all" {
		agencyType = models.TypeKabKota
	}
	q := yearQuery(year)
	q.Set("tipe", agencyType)
	return s.c.Download(ctx, yearPath(kind, "template"), q,
		fmt.Sprintf("template_slhd_%d.xlsx", year))
}

/*─────────────────────────────────────────────────────────────────────────────*
| Validasi 1 and 2                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// Validation1 lists Validasi 1 rows for year.
func (s *Store) Validation1(ctx context.Context, year int) ([]models.Validation1Row, error) {
	return list[models.Validation1Row](ctx, s.c, yearPath("validasi-1", year), nil)
}

// FinalizeValidation1 finalizes Validasi 1.
func (s *Store) FinalizeValidation1(ctx context.Context, year int) error {
	return s.c.Send(ctx, http.MethodPatch, yearPath("validasi-1", year, "finalize"), nil, nil)
}

// Validation2 lists Validasi 2 rows for year.
func (s *Store) Validation2(ctx context.Context, year int) ([]models.Validation2Row, error) {
	return list[models.Validation2Row](ctx, s.c, yearPath("validasi-2", year), nil)
}

// UpdateChecklist sets both compliance criteria of one row.
func (s *Store) UpdateChecklist(ctx context.Context, rowID int64, u models.ChecklistUpdate) error {
	return s.c.Send(ctx, http.MethodPatch, yearPath("validasi-2", rowID, "checklist"), u, nil)
}

// FinalizeValidation2 finalizes Validasi 2.
func (s *Store) FinalizeValidation2(ctx context.Context, year int) error {
	return s.c.Send(ctx, http.MethodPost, yearPath("validasi-2", year, "finalize"), nil, nil)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Ranking and interviews                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// Ranked lists the ranked agencies of one category. top=999 asks for all.
func (s *Store) Ranked(ctx context.Context, year int, category stages.Category, top int) ([]models.RankedRow, error) {
	q := url.Values{
		"kategori": {string(category)},
		"top":      {strconv.Itoa(top)},
	}
	rows, err := list[models.RankedRow](ctx, s.c, yearPath("validasi-2", year, "ranked"), q)
	if err != nil {
		return nil, err
	}
	stages.SortRanked(rows)
	return rows, nil
}

// CreateInterviews finalizes the ranking and seeds the interview roster with
// the top agencies of every category.
func (s *Store) CreateInterviews(ctx context.Context, year, top int) error {
	return s.c.Send(ctx, http.MethodPost, yearPath("validasi-2", year, "create-wawancara"),
		map[string]int{"top": top}, nil)
}

// Interviews lists the interview roster for year.
func (s *Store) Interviews(ctx context.Context, year int) ([]models.InterviewRow, error) {
	return list[models.InterviewRow](ctx, s.c, yearPath("wawancara", year), nil)
}

// UpdateInterviewScore records one agency's interview score.
func (s *Store) UpdateInterviewScore(ctx context.Context, rowID int64, score float64) error {
	return s.c.Send(ctx, http.MethodPatch, yearPath("wawancara", rowID, "nilai"),
		map[string]float64{"nilai_wawancara": score}, nil)
}

// FinalizeInterviews finalizes the interview stage; the API computes the
// final scores.
func (s *Store) FinalizeInterviews(ctx context.Context, year int) error {
	return s.c.Send(ctx, http.MethodPatch, yearPath("wawancara", year, "finalize"), nil, nil)
}

// Recap fetches one agency's score recap. ok is false when the API has none.
func (s *Store) Recap(ctx context.Context, year int, agencyID int64) (models.Recap, bool, error) {
	var out models.Recap
	b, err := s.c.GetBytes(ctx, yearPath("rekap", year, "dinas", agencyID), nil)
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			return out, false, nil
		}
		return out, false, err
	}
	if err := apiclient.DecodeObject(b, &out); err != nil {
		return out, false, fmt.Errorf("decode recap: %w", err)
	}
	return out, true, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Progress                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// ProgressStats fetches the per-stage counters for year.
func (s *Store) ProgressStats(ctx context.Context, year int) (models.ProgressStats, error) {
	var out models.ProgressStats
	b, err := s.c.GetBytes(ctx, base+"/progress-stats", yearQuery(year))
	if err != nil {
		return out, err
	}
	if err := apiclient.DecodeObject(b, &out); err != nil {
		return out, fmt.Errorf("decode progress stats: %w", err)
	}
	return out, nil
}
