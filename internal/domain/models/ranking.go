// internal/domain/models/ranking.go
package models

// RankedRow is one agency in a category ranking.
type RankedRow struct {
	Peringkat          int     `json:"peringkat"`
	IDDinas            int64   `json:"id_dinas"`
	NamaDinas          string  `json:"nama_dinas"`
	Kategori           string  `json:"kategori"`
	Provinsi           string  `json:"provinsi"`
	NilaiPenghargaan   float64 `json:"Nilai_Penghargaan"`
	NilaiIKLH          float64 `json:"Nilai_IKLH"`
	TotalSkor          float64 `json:"Total_Skor"`
	KriteriaWTP        bool    `json:"Kriteria_WTP"`
	KriteriaKasusHukum bool    `json:"Kriteria_Kasus_Hukum"`
}
