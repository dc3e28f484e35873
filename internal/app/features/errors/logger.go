// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/sipelita/dashboard/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// ErrorLogger logs a server-side failure and shows the operator a friendly
// page instead of the raw error.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// LogServerError logs err under logMsg and renders a 500 page with
// userMsg. HTMX requests get the message as a plain fragment so the swap
// target shows it.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.Log.Error(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))

	if userMsg == "" {
		userMsg = "Terjadi kesalahan pada server."
	}
	if r.Header.Get("HX-Request") == "true" {
		w.WriteHeader(http.StatusInternalServerError)
		templates.RenderSnippet(w, "error_fragment", pageData{Message: userMsg})
		return
	}

	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Terjadi kesalahan", backURL),
		Message: userMsg,
	}
	if backURL != "" {
		data.BackURL = backURL
	}
	w.WriteHeader(http.StatusInternalServerError)
	templates.Render(w, r, "error_server", data)
}
