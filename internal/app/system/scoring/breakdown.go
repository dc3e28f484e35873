package scoring

import "github.com/sipelita/dashboard/internal/domain/models"

// BreakdownRow is one line of a weighted-score table on the regional
// result page.
type BreakdownRow struct {
	No         int
	Component  string
	Weight     float64
	Value      float64
	Score      float64
	Status     string
	Note       string
	HasWeights bool
}

// DefaultChapterRows is shown before the SLHD detail has been published.
func DefaultChapterRows() []BreakdownRow {
	return []BreakdownRow{
		{No: 1, Component: "BAB I - Pendahuluan", Weight: 10, HasWeights: true},
		{No: 2, Component: "BAB II - Analisis Isu LH Daerah", Weight: 50, HasWeights: true},
		{No: 3, Component: "BAB III - Isu Prioritas Daerah", Weight: 20, HasWeights: true},
		{No: 4, Component: "BAB IV - Inovasi Daerah", Weight: 15, HasWeights: true},
		{No: 5, Component: "BAB V - Penutup", Weight: 5, HasWeights: true},
	}
}

// DefaultAwardRows is shown before the award detail has been published.
func DefaultAwardRows() []BreakdownRow {
	return []BreakdownRow{
		{No: 1, Component: "Adipura", Weight: 35, Status: LabelPass, HasWeights: true},
		{No: 2, Component: "Proper", Weight: 21, Status: LabelPass, HasWeights: true},
		{No: 3, Component: "Proklim", Weight: 19, Status: LabelPass, HasWeights: true},
		{No: 4, Component: "Adiwiyata", Weight: 15, Status: LabelPass, HasWeights: true},
		{No: 5, Component: "Kalpataru", Weight: 10, Status: LabelPass, HasWeights: true},
	}
}

// ChapterRows maps the published SLHD detail, falling back to the defaults
// when it is unavailable.
func ChapterRows(d *models.DetailSLHD) []BreakdownRow {
	if d == nil || !d.Available || len(d.DetailBab) == 0 {
		return DefaultChapterRows()
	}
	rows := make([]BreakdownRow, 0, len(d.DetailBab))
	for _, b := range d.DetailBab {
		rows = append(rows, BreakdownRow{
			No:         b.No,
			Component:  b.Komponen,
			Weight:     b.Bobot.OrZero(),
			Value:      b.Nilai.OrZero(),
			Score:      b.Skor.OrZero(),
			HasWeights: true,
		})
	}
	return rows
}

// AwardRows maps the published award detail, falling back to the defaults
// when it is unavailable.
func AwardRows(d *models.DetailPenghargaan) []BreakdownRow {
	if d == nil || !d.Available || len(d.DetailKategori) == 0 {
		return DefaultAwardRows()
	}
	rows := make([]BreakdownRow, 0, len(d.DetailKategori))
	for _, k := range d.DetailKategori {
		rows = append(rows, BreakdownRow{
			No:         k.No,
			Component:  k.Kategori,
			Weight:     k.Bobot.OrZero(),
			Value:      k.Persentase.OrZero(),
			Score:      k.NilaiTertimbang.OrZero(),
			HasWeights: true,
		})
	}
	return rows
}

// Validation1Rows splits the Validation 1 score into its weighted award and
// index components. Without a published result both rows read zero.
func Validation1Rows(res *models.StageResult) []BreakdownRow {
	award, index, status := 0.0, 0.0, LabelMissing
	if res != nil && res.NilaiPenghargaan.Valid && res.NilaiIKLH.Valid {
		award, index = res.NilaiPenghargaan.Value, res.NilaiIKLH.Value
		status = res.Status
	}
	return []BreakdownRow{
		{No: 1, Component: "Nilai Penghargaan", Weight: AwardWeight * 100, Value: award, Score: award * AwardWeight, Status: status, HasWeights: true},
		{No: 2, Component: "Nilai IKLH", Weight: IndexWeight * 100, Value: index, Score: index * IndexWeight, Status: status, HasWeights: true},
	}
}

// CriterionMet is the value the API sends for a satisfied criterion.
const CriterionMet = "Memenuhi"

// Validation2Rows describes the two compliance criteria of a published
// Validation 2 result.
func Validation2Rows(res *models.StageResult) []BreakdownRow {
	if res == nil || res.KriteriaWTP == nil || res.KriteriaKasus == nil {
		return []BreakdownRow{
			{No: 1, Component: "Kriteria WTP (Wajar Tanpa Pengecualian)", Status: LabelMissing, Note: LabelMissing},
			{No: 2, Component: "Kriteria Kasus Hukum Lingkungan", Status: LabelMissing, Note: LabelMissing},
		}
	}
	wtp := BreakdownRow{No: 1, Component: "Kriteria WTP (Wajar Tanpa Pengecualian)", Status: *res.KriteriaWTP}
	if *res.KriteriaWTP == CriterionMet {
		wtp.Note = "Laporan keuangan daerah mendapat opini WTP dari BPK"
	} else {
		wtp.Note = "Laporan keuangan daerah tidak mendapat opini WTP dari BPK"
	}
	legal := BreakdownRow{No: 2, Component: "Kriteria Kasus Hukum Lingkungan", Status: *res.KriteriaKasus}
	if *res.KriteriaKasus == CriterionMet {
		legal.Note = "Tidak ada kasus hukum lingkungan yang sedang berjalan"
	} else {
		legal.Note = "Terdapat kasus hukum lingkungan yang sedang berjalan"
	}
	return []BreakdownRow{wtp, legal}
}

// InterviewRows shows the published interview score.
func InterviewRows(res *models.StageResult) []BreakdownRow {
	if res == nil || !res.NilaiWawancara.Valid {
		return nil
	}
	v := res.NilaiWawancara.Value
	return []BreakdownRow{{No: 1, Component: "Nilai Wawancara", Weight: 100, Value: v, Score: v, HasWeights: true}}
}

// TimelineLabel maps a timeline state to its display label. Unknown states
// fall back to the item's own note.
func TimelineLabel(item models.TimelineItem) string {
	switch item.Status {
	case models.TimelinePending:
		return "BELUM DIMULAI"
	case models.TimelineActive:
		return "SEDANG BERLANGSUNG"
	case models.TimelineCompleted:
		return "SELESAI"
	}
	return item.Keterangan
}
