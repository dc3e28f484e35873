// internal/domain/models/validation.go
package models

// Validation 1 results.
const (
	ResultLulus      = "lulus"
	ResultTidakLulus = "tidak_lulus"
)

// Validation 2 statuses.
const (
	ValidationPending    = "pending"
	ValidationLolos      = "lolos"
	ValidationTidakLolos = "tidak_lolos"
)

// Validation1Row combines the finalized award and environmental-index scores.
type Validation1Row struct {
	ID               int64    `json:"id"`
	IDDinas          int64    `json:"id_dinas"`
	NamaDinas        string   `json:"nama_dinas"`
	TotalSkor        *float64 `json:"Total_Skor"`
	NilaiIKLH        *float64 `json:"Nilai_IKLH"`
	NilaiPenghargaan *float64 `json:"Nilai_Penghargaan"`
	Status           string   `json:"status"`
	StatusResult     *string  `json:"status_result"`
}

// Result returns status_result or "".
func (v Validation1Row) Result() string {
	if v.StatusResult == nil {
		return ""
	}
	return *v.StatusResult
}

// Validation2Row adds the two compliance criteria toggled by pusdatin.
type Validation2Row struct {
	ID                 int64    `json:"id"`
	IDDinas            int64    `json:"id_dinas"`
	NamaDinas          string   `json:"nama_dinas"`
	NilaiPenghargaan   *float64 `json:"Nilai_Penghargaan"`
	NilaiIKLH          *float64 `json:"Nilai_IKLH"`
	TotalSkor          *float64 `json:"Total_Skor"`
	KriteriaWTP        bool     `json:"Kriteria_WTP"`
	KriteriaKasusHukum bool     `json:"Kriteria_Kasus_Hukum"`
	StatusValidasi     string   `json:"status_validasi"`
	Status             string   `json:"status,omitempty"`
	Catatan            *string  `json:"catatan"`
}

// ChecklistUpdate is the body of PATCH /validasi-2/{id}/checklist. Both
// fields are always sent.
type ChecklistUpdate struct {
	KriteriaWTP        bool `json:"Kriteria_WTP"`
	KriteriaKasusHukum bool `json:"Kriteria_Kasus_Hukum"`
}
