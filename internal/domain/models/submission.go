// internal/domain/models/submission.go
package models

// Region types of an agency.
const (
	TypeProvinsi = "provinsi"
	TypeKabKota  = "kabupaten/kota"
)

// Document statuses of the three SLHD documents.
const (
	DocDraft     = "draft"
	DocFinalized = "finalized"
	DocApproved  = "approved"
)

// Submission is one agency's SLHD submission for a year.
type Submission struct {
	IDDinas        int64  `json:"id_dinas"`
	NamaDinas      string `json:"nama_dinas"`
	Provinsi       string `json:"provinsi"`
	Tipe           string `json:"tipe"`
	Buku1Finalized bool   `json:"buku1_finalized"`
	Buku2Finalized bool   `json:"buku2_finalized"`
	TabelFinalized bool   `json:"tabel_finalized"`
	AllFinalized   bool   `json:"all_finalized"`
	Buku1Status    string `json:"buku1_status,omitempty"`
	Buku2Status    string `json:"buku2_status,omitempty"`
	TabelStatus    string `json:"tabel_status,omitempty"`
}

// AllApproved reports whether every document has been approved, which is
// what makes the agency eligible for the later stages.
func (s Submission) AllApproved() bool {
	return s.Buku1Status == DocApproved &&
		s.Buku2Status == DocApproved &&
		s.TabelStatus == DocApproved
}
