// internal/domain/models/interview.go
package models

// InterviewRow is one agency that reached the interview stage.
type InterviewRow struct {
	ID             int64    `json:"id"`
	Year           int      `json:"year"`
	IDDinas        int64    `json:"id_dinas"`
	NamaDinas      string   `json:"nama_dinas"`
	Kategori       string   `json:"kategori"`
	Provinsi       string   `json:"provinsi"`
	NilaiWawancara *float64 `json:"nilai_wawancara"`
	Catatan        *string  `json:"catatan"`
	Status         string   `json:"status"`
	IsFinalized    bool     `json:"is_finalized"`
}

// Recap is the per-agency score recap used as the 90% base of NT Final.
type Recap struct {
	IDDinas          int64      `json:"id_dinas"`
	NamaDinas        string     `json:"nama_dinas"`
	NilaiSLHD        FlexNumber `json:"nilai_slhd"`
	NilaiPenghargaan FlexNumber `json:"nilai_penghargaan"`
	NilaiIKLH        FlexNumber `json:"nilai_iklh"`
	TotalSkor        FlexNumber `json:"total_skor"`
	LolosValidasi1   bool       `json:"lolos_validasi1"`
	LolosValidasi2   bool       `json:"lolos_validasi2"`
}
