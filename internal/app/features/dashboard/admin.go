// internal/app/features/dashboard/admin.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	dashstore "github.com/sipelita/dashboard/internal/app/store/dashboard"
	"github.com/sipelita/dashboard/internal/app/system/apiclient"
	"github.com/sipelita/dashboard/internal/app/system/timeouts"
	"github.com/sipelita/dashboard/internal/app/system/viewdata"
	"github.com/sipelita/dashboard/internal/domain/models"
	"go.uber.org/zap"
)

type adminData struct {
	viewdata.BaseVM
	Stats models.AdminStats
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "admin dashboard")
	defer cancel()

	data := adminData{BaseVM: viewdata.NewBaseVM(r, "Dashboard Admin", "/admin")}

	stats, err := dashstore.New(h.client(r)).AdminStats(ctx)
	if err != nil {
		if h.SessionMgr.ExpireIfUnauthorized(w, r, err) {
			return
		}
		h.Log.Warn("admin stats failed", zap.Error(err))
		data.SetError(apiclient.UserMessage(err, "Gagal memuat statistik pengguna."))
	}
	data.Stats = stats

	templates.Render(w, r, "admin_dashboard", data)
}
