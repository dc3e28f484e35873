// internal/domain/models/pengumuman.go
package models

// Timeline states.
const (
	TimelinePending   = "pending"
	TimelineActive    = "active"
	TimelineCompleted = "completed"
)

// TimelineItem is one stage of the announcement timeline.
type TimelineItem struct {
	Tahap      string `json:"tahap"`
	Nama       string `json:"nama"`
	Status     string `json:"status"`
	Keterangan string `json:"keterangan"`
}

// Timeline is the response of /api/dinas/pengumuman/timeline.
type Timeline struct {
	Year              FlexString     `json:"year"`
	TahapAktif        string         `json:"tahap_aktif"`
	PengumumanTerbuka bool           `json:"pengumuman_terbuka"`
	Keterangan        string         `json:"keterangan"`
	Items             []TimelineItem `json:"timeline"`
}

// StageResult is an agency's announced result for one stage.
type StageResult struct {
	TahapDiumumkan   string     `json:"tahap_diumumkan"`
	NilaiSLHD        FlexNumber `json:"nilai_slhd"`
	NilaiPenghargaan FlexNumber `json:"nilai_penghargaan"`
	NilaiIKLH        FlexNumber `json:"nilai_iklh"`
	NilaiWawancara   FlexNumber `json:"nilai_wawancara"`
	TotalSkor        FlexNumber `json:"total_skor"`
	TotalSkorFinal   FlexNumber `json:"total_skor_final"`
	KriteriaWTP      *string    `json:"kriteria_wtp"`
	KriteriaKasus    *string    `json:"kriteria_kasus_hukum"`
	Peringkat        *int       `json:"peringkat"`
	PeringkatFinal   *int       `json:"peringkat_final"`
	Status           string     `json:"status"`
	Keterangan       string     `json:"keterangan"`
}

// Announcement wraps /api/dinas/pengumuman/{year}/{tahap}.
type Announcement struct {
	Available bool         `json:"pengumuman_tersedia"`
	Hasil     *StageResult `json:"hasil"`
}

// ChapterDetail is one BAB of the SLHD detail.
type ChapterDetail struct {
	No       int        `json:"no"`
	Komponen string     `json:"komponen"`
	Bobot    FlexNumber `json:"bobot"`
	Nilai    FlexNumber `json:"nilai"`
	Skor     FlexNumber `json:"skor"`
}

// DetailSLHD is the response of /api/dinas/pengumuman/detail-slhd.
type DetailSLHD struct {
	Available bool            `json:"available"`
	DetailBab []ChapterDetail `json:"detail_bab"`
}

// AwardDetail is one award category of the award detail.
type AwardDetail struct {
	No              int        `json:"no"`
	Kategori        string     `json:"kategori"`
	Bobot           FlexNumber `json:"bobot"`
	Persentase      FlexNumber `json:"persentase"`
	NilaiTertimbang FlexNumber `json:"nilai_tertimbang"`
}

// DetailPenghargaan is the response of /api/dinas/pengumuman/detail-penghargaan.
type DetailPenghargaan struct {
	Available      bool          `json:"available"`
	DetailKategori []AwardDetail `json:"detail_kategori"`
}
