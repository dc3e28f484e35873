// internal/app/features/auditlog/types.go
package auditlog

import (
	"github.com/sipelita/dashboard/internal/app/store/audit"
	"github.com/sipelita/dashboard/internal/app/system/paging"
	"github.com/sipelita/dashboard/internal/app/system/viewdata"
)

// listItem represents a single audit event row for display.
type listItem struct {
	ID        string
	When      string
	Category  string
	EventType string
	Label     string
	ActorName string // name at the time of the event, else the API user id
	ActorRole string
	Year      int
	Stage     string
	Target    string
	IP        string
	Success   bool
	Reason    string
	Details   map[string]string
}

// listData is the view model for the audit trail page.
type listData struct {
	viewdata.BaseVM

	Items []listItem

	// Filters
	Category   string
	EventType  string
	FilterYear int
	Stage      string
	StartDate  string
	EndDate    string

	// Filter options
	Categories []option
	EventTypes []option
	Stages     []option

	Page  paging.Page[listItem]
	Pager viewdata.Pager
}

// option is one entry of a filter dropdown.
type option struct {
	Value string
	Label string
}

var categoryLabels = map[string]string{
	audit.CategoryAuth:      "Autentikasi",
	audit.CategoryPenilaian: "Penilaian",
}

var eventLabels = map[string]string{
	audit.EventLoginSuccess:         "Login berhasil",
	audit.EventLoginFailed:          "Login gagal",
	audit.EventLoginFailedRateLimit: "Login diblokir (terlalu sering)",
	audit.EventLogout:               "Logout",
	audit.EventSessionExpired:       "Sesi kedaluwarsa",
	audit.EventRoundUploaded:        "Unggah berkas",
	audit.EventRoundFinalized:       "Finalisasi batch",
	audit.EventValidasi1Finalized:   "Finalisasi Validasi 1",
	audit.EventChecklistUpdated:     "Ubah checklist Validasi 2",
	audit.EventValidasi2Finalized:   "Finalisasi Validasi 2",
	audit.EventInterviewsCreated:    "Buat daftar wawancara",
	audit.EventInterviewScored:      "Simpan nilai wawancara",
	audit.EventInterviewsFinalized:  "Finalisasi wawancara",
	audit.EventExport:               "Ekspor Excel",
}

var authEvents = []string{
	audit.EventLoginSuccess,
	audit.EventLoginFailed,
	audit.EventLoginFailedRateLimit,
	audit.EventLogout,
	audit.EventSessionExpired,
}

var penilaianEvents = []string{
	audit.EventRoundUploaded,
	audit.EventRoundFinalized,
	audit.EventValidasi1Finalized,
	audit.EventChecklistUpdated,
	audit.EventValidasi2Finalized,
	audit.EventInterviewsCreated,
	audit.EventInterviewScored,
	audit.EventInterviewsFinalized,
	audit.EventExport,
}

// stages are the penilaian steps an event can be tagged with.
var stages = []option{
	{Value: "slhd", Label: "Penilaian SLHD"},
	{Value: "penghargaan", Label: "Penilaian Penghargaan"},
	{Value: "validasi1", Label: "Validasi 1"},
	{Value: "validasi2", Label: "Validasi 2"},
	{Value: "peringkat", Label: "Peringkat"},
	{Value: "wawancara", Label: "Wawancara"},
}

// allCategories returns the available categories for filtering.
func allCategories() []option {
	out := make([]option, 0, len(audit.Categories))
	for _, c := range audit.Categories {
		out = append(out, option{Value: c, Label: categoryLabels[c]})
	}
	return out
}

// eventTypesForCategory returns the event types for a given category.
// If category is empty, returns all event types.
func eventTypesForCategory(category string) []option {
	var types []string
	switch category {
	case audit.CategoryAuth:
		types = authEvents
	case audit.CategoryPenilaian:
		types = penilaianEvents
	case "":
		types = append(append([]string{}, authEvents...), penilaianEvents...)
	default:
		return nil
	}
	out := make([]option, 0, len(types))
	for _, t := range types {
		out = append(out, option{Value: t, Label: eventLabel(t)})
	}
	return out
}

func eventLabel(eventType string) string {
	if l, ok := eventLabels[eventType]; ok {
		return l
	}
	return eventType
}
