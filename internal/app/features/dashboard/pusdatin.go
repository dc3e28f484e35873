// internal/app/features/dashboard/pusdatin.go
package dashboard

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	dashstore "github.com/sipelita/dashboard/internal/app/store/dashboard"
	penilaianstore "github.com/sipelita/dashboard/internal/app/store/penilaian"
	"github.com/sipelita/dashboard/internal/app/system/htmlsanitize"
	"github.com/sipelita/dashboard/internal/app/system/scoring"
	"github.com/sipelita/dashboard/internal/app/system/settle"
	"github.com/sipelita/dashboard/internal/app/system/timeouts"
	"github.com/sipelita/dashboard/internal/app/system/viewdata"
	"github.com/sipelita/dashboard/internal/domain/models"
	"go.uber.org/zap"
)

const avgNotStarted = "Penilaian belum dimulai"

// StatCard is one counter tile of the pusdatin dashboard. Lines render as
// separate rows.
type StatCard struct {
	Title string
	Lines []string
}

type pusdatinData struct {
	viewdata.BaseVM
	Greeting      string
	StatCards     []StatCard
	ProgressCards []scoring.ProgressCard
	Announcement  template.HTML
	Notification  template.HTML
	// StatsError and friends mark widgets whose fetch failed; the rest of
	// the page still renders.
	StatsError    bool
	ProgressError bool
	NoticesError  bool
}

// StatCards maps the dashboard counters to display tiles.
func StatCards(s models.DashboardStats) []StatCard {
	avg := strings.TrimSpace(s.AvgNilaiSLHD)
	if avg == "" {
		avg = avgNotStarted
	}
	counts := func(upload, approved int) []string {
		return []string{fmt.Sprintf("%d Upload", upload), fmt.Sprintf("%d Approved", approved)}
	}
	return []StatCard{
		{Title: "Total Dinas Terdaftar", Lines: []string{fmt.Sprint(s.TotalDLH)}},
		{Title: "SLHD Buku 1", Lines: counts(s.Buku1Upload, s.Buku1Approved)},
		{Title: "SLHD Buku 2", Lines: counts(s.Buku2Upload, s.Buku2Approved)},
		{Title: "IKLH", Lines: counts(s.IKLHUpload, s.IKLHApproved)},
		{Title: "Rata-rata Nilai SLHD", Lines: []string{avg}},
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /pusdatin                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// ServePusdatin loads stats, progress and notifications side by side. Each
// widget degrades on its own when its fetch fails.
func (h *Handler) ServePusdatin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "pusdatin dashboard")
	defer cancel()

	data := pusdatinData{BaseVM: viewdata.NewBaseVM(r, "Dashboard Pusdatin", "/pusdatin")}
	data.Greeting = "Selamat Datang, " + strings.ToUpper(data.UserName)

	c := h.client(r)
	dash := dashstore.New(c)
	pen := penilaianstore.New(c)
	year := data.Year

	var (
		stats    models.DashboardStats
		progress models.ProgressStats
		notices  models.Notifications
	)
	results := settle.All(ctx,
		settle.Task{Name: "stats", Run: func(ctx context.Context) (err error) {
			stats, err = dash.Stats(ctx, year)
			return err
		}},
		settle.Task{Name: "progress", Run: func(ctx context.Context) (err error) {
			progress, err = pen.ProgressStats(ctx, year)
			return err
		}},
		settle.Task{Name: "notifications", Run: func(ctx context.Context) (err error) {
			notices, err = dash.Notifications(ctx, year)
			return err
		}},
	)

	for _, res := range settle.Failed(results) {
		if h.SessionMgr.ExpireIfUnauthorized(w, r, res.Err) {
			return
		}
		h.Log.Warn("pusdatin dashboard widget failed",
			zap.String("widget", res.Name), zap.Int("year", year), zap.Error(res.Err))
		switch res.Name {
		case "stats":
			data.StatsError = true
		case "progress":
			data.ProgressError = true
		case "notifications":
			data.NoticesError = true
		}
	}

	data.StatCards = StatCards(stats)
	if data.ProgressError {
		data.ProgressCards = scoring.LoadingCards("Gagal memuat progres")
	} else {
		data.ProgressCards = scoring.ProgressCards(progress)
	}
	if notices.Announcement != nil {
		data.Announcement = htmlsanitize.Render(*notices.Announcement)
	}
	if notices.Notification != nil {
		data.Notification = htmlsanitize.Render(*notices.Notification)
	}

	templates.Render(w, r, "pusdatin_dashboard", data)
}
