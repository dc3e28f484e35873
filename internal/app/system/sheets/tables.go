package sheets

import (
	"fmt"

	"github.com/sipelita/dashboard/internal/app/system/scoring"
	"github.com/sipelita/dashboard/internal/domain/models"
)

func num(p *float64) any {
	if p == nil {
		return ""
	}
	return *p
}

func yesNo(b bool) string {
	if b {
		return "Ya"
	}
	return "Tidak"
}

// RankedTable lays out a category ranking, including the 5% bonus column.
func RankedTable(category string, rows []models.RankedRow) Table {
	t := Table{
		Sheet:  "Peringkat",
		Header: []string{"Peringkat", "Nama DLH", "Provinsi", "Kategori", "Nilai Penghargaan", "Nilai IKLH", "Total Skor", "Bonus 5%", "Kriteria WTP", "Kriteria Kasus Hukum"},
	}
	if category != "" {
		t.Sheet = fmt.Sprintf("Peringkat %s", category)
		if len(t.Sheet) > 31 {
			t.Sheet = t.Sheet[:31]
		}
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.Peringkat, r.NamaDinas, r.Provinsi, r.Kategori,
			r.NilaiPenghargaan, r.NilaiIKLH, r.TotalSkor, scoring.Bonus(r.TotalSkor),
			yesNo(r.KriteriaWTP), yesNo(r.KriteriaKasusHukum),
		})
	}
	return t
}

// Validation1Table lays out Validasi 1 rows with the pass/fail label.
func Validation1Table(rows []models.Validation1Row, threshold float64) Table {
	t := Table{
		Sheet:  "Validasi 1",
		Header: []string{"No", "Nama DLH", "Nilai Penghargaan", "Nilai IKLH", "Total Skor", "Keterangan"},
	}
	for i, r := range rows {
		t.Rows = append(t.Rows, []any{
			i + 1, r.NamaDinas, num(r.NilaiPenghargaan), num(r.NilaiIKLH), num(r.TotalSkor),
			scoring.PassFailLabel(r.TotalSkor, threshold),
		})
	}
	return t
}

// Validation2Table lays out Validasi 2 rows with both criteria.
func Validation2Table(rows []models.Validation2Row) Table {
	t := Table{
		Sheet:  "Validasi 2",
		Header: []string{"No", "Nama DLH", "Nilai Penghargaan", "Nilai IKLH", "Total Skor", "Kriteria WTP", "Kriteria Kasus Hukum", "Status"},
	}
	for i, r := range rows {
		t.Rows = append(t.Rows, []any{
			i + 1, r.NamaDinas, num(r.NilaiPenghargaan), num(r.NilaiIKLH), num(r.TotalSkor),
			yesNo(r.KriteriaWTP), yesNo(r.KriteriaKasusHukum), r.StatusValidasi,
		})
	}
	return t
}
