package stages

import (
	"testing"

	"github.com/sipelita/dashboard/internal/domain/models"
)

func TestKind(t *testing.T) {
	tests := []struct {
		key        string
		kind       Kind
		top, badge int
	}{
		{"top5", KindTop5, 5, 5},
		{"top10", KindTop10, 10, 10},
		{"all", KindAll, 999, 5},
		{"", KindTop5, 5, 5},
	}
	for _, tt := range tests {
		k := ParseKind(tt.key)
		if k != tt.kind || k.RequestTop() != tt.top || k.BadgeTop() != tt.badge {
			t.Errorf("ParseKind(%q) = %s top=%d badge=%d", tt.key, k, k.RequestTop(), k.BadgeTop())
		}
	}
}

func TestParseCategory(t *testing.T) {
	if ParseCategory("kota_sedang") != CatKotaSedang || ParseCategory("x") != CatProvinsi {
		t.Error("unexpected ParseCategory result")
	}
	if CatKabupatenKecil.Label() != "Kabupaten Kecil" {
		t.Errorf("Label = %q", CatKabupatenKecil.Label())
	}
}

func TestSortRanked_TieBreak(t *testing.T) {
	rows := []models.RankedRow{
		{IDDinas: 3, NamaDinas: "DLH Sleman", TotalSkor: 80},
		{IDDinas: 1, NamaDinas: "DLH Bantul", TotalSkor: 80},
		{IDDinas: 2, NamaDinas: "DLH Kulon Progo", TotalSkor: 91},
	}
	SortRanked(rows)
	want := []int64{2, 1, 3}
	for i, id := range want {
		if rows[i].IDDinas != id || rows[i].Peringkat != i+1 {
			t.Errorf("row %d = id %d rank %d, want id %d rank %d", i, rows[i].IDDinas, rows[i].Peringkat, id, i+1)
		}
	}
}
