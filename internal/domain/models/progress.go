// internal/domain/models/progress.go
package models

// StageCounts is the per-stage block of /progress-stats. Not every stage
// fills every field.
type StageCounts struct {
	IsFinalized bool `json:"is_finalized"`
	Finalized   int  `json:"finalized"`
	Processed   int  `json:"processed"`
	Lolos       int  `json:"lolos"`
	Checked     int  `json:"checked"`
	WithNilai   int  `json:"with_nilai"`
}

// ProgressStats is the response of /api/pusdatin/penilaian/progress-stats.
type ProgressStats struct {
	TotalDLH    int         `json:"total_dlh"`
	SLHD        StageCounts `json:"slhd"`
	Penghargaan StageCounts `json:"penghargaan"`
	Validasi1   StageCounts `json:"validasi1"`
	Validasi2   StageCounts `json:"validasi2"`
	Wawancara   StageCounts `json:"wawancara"`
}
