// internal/domain/models/round.go
package models

import "time"

// RoundStatus is the lifecycle state of an uploaded scoring round.
type RoundStatus string

const (
	RoundUploaded     RoundStatus = "uploaded"
	RoundParsing      RoundStatus = "parsing"
	RoundParsedOK     RoundStatus = "parsed_ok"
	RoundParsedFailed RoundStatus = "parsed_failed"
	RoundFinalized    RoundStatus = "finalized"
)

// Uploader identifies who uploaded a round.
type Uploader struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Round is one uploaded version of SLHD or award scores ("penilaian").
type Round struct {
	ID          int64       `json:"id"`
	Year        int         `json:"year"`
	Status      RoundStatus `json:"status"`
	FilePath    string      `json:"file_path"`
	UploadedAt  *time.Time  `json:"uploaded_at"`
	FinalizedAt *time.Time  `json:"finalized_at"`
	IsFinalized bool        `json:"is_finalized"`
	Catatan     *string     `json:"catatan"`
	UploadedBy  *Uploader   `json:"uploaded_by,omitempty"`
}

// Locked reports whether the round can no longer change. Either signal is
// enough: older rounds only carry the flag, newer ones carry both.
func (r Round) Locked() bool {
	return r.IsFinalized || r.Status == RoundFinalized
}

// Note returns the free-text note or "".
func (r Round) Note() string {
	if r.Catatan == nil {
		return ""
	}
	return *r.Catatan
}
