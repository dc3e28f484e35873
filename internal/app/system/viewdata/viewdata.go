// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/gorilla/csrf"
	"github.com/sipelita/dashboard/internal/app/system/auth"
	"github.com/sipelita/dashboard/internal/app/system/authz"
)

// SiteName is shown in the page header and title.
const SiteName = "SIPELITA"

// yearSpan is how many assessment years the year selector offers.
const yearSpan = 5

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Penilaian", "/pusdatin"),
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn   bool
	Role         string
	UserName     string
	UserRegion   string // province or regency name for DLH accounts
	DashboardURL string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// Assessment year chosen with ?year=, and the selector options.
	Year  int
	Years []int

	CSRFToken string
	CSRFField template.HTML

	// Notices popped by auth.LoadFlashes, and a form-level error.
	Flashes []auth.Flash
	Error   string
}

// NewBaseVM creates a fully populated BaseVM for a page.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)

	vm := BaseVM{
		SiteName:    SiteName,
		IsLoggedIn:  signedIn,
		Role:        role,
		UserName:    name,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		Year:        SelectedYear(r),
		Years:       YearOptions(time.Now()),
		CSRFToken:   csrf.Token(r),
		CSRFField:   csrf.TemplateField(r),
		Flashes:     auth.FlashesFrom(r),
	}
	if signedIn {
		vm.DashboardURL = authz.DashboardPath(role)
	}
	if u, ok := auth.CurrentUser(r); ok {
		vm.UserRegion = u.RegencyName
		if vm.UserRegion == "" {
			vm.UserRegion = u.ProvinceName
		}
	}
	return vm
}

// SetError sets the form-level error message.
func (b *BaseVM) SetError(msg string) {
	b.Error = msg
}

// SelectedYear returns ?year= (or the "year" form value) when it is a
// plausible assessment year, otherwise the current year.
func SelectedYear(r *http.Request) int {
	raw := query.Get(r, "year")
	if raw == "" && r.Method != http.MethodGet {
		raw = r.PostFormValue("year")
	}
	if y, err := strconv.Atoi(raw); err == nil && y >= 2000 && y <= 2100 {
		return y
	}
	return time.Now().Year()
}

// YearOptions lists the current year and the preceding ones, newest first.
func YearOptions(now time.Time) []int {
	out := make([]int, yearSpan)
	for i := range out {
		out[i] = now.Year() - i
	}
	return out
}

// Pager feeds the shared "pager" template. Page is a paging.Page of any
// row type; PageURL already carries the filter query and ends without the
// page parameter. Param names that parameter and defaults to "page".
type Pager struct {
	Page    any
	PageURL string
	Target  string
	Param   string
}
