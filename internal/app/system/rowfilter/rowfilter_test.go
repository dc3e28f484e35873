package rowfilter

import (
	"reflect"
	"testing"

	"github.com/sipelita/dashboard/internal/domain/models"
)

type row struct {
	ID     int64
	Status string
}

func rowID(r row) int64      { return r.ID }
func rowStatus(r row) string { return r.Status }

func ids(rows []row) []int64 {
	out := []int64{}
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestSubmissions_ByType(t *testing.T) {
	subs := []models.Submission{
		{IDDinas: 1, Tipe: models.TypeProvinsi},
		{IDDinas: 2, Tipe: models.TypeKabKota},
	}
	got := Submissions(subs, Criteria{Type: models.TypeProvinsi})
	if len(got) != 1 || got[0].IDDinas != 1 {
		t.Errorf("got %+v, want only id 1", got)
	}

	got = Submissions(subs, Criteria{})
	if len(got) != 2 || got[0].IDDinas != 1 || got[1].IDDinas != 2 {
		t.Errorf("no filter should keep both rows in order, got %+v", got)
	}
}

func TestFilter_OrphanRows(t *testing.T) {
	idx := NewIndex([]models.Submission{
		{IDDinas: 1, Tipe: models.TypeProvinsi, Provinsi: "Jawa Barat"},
		{IDDinas: 2, Tipe: models.TypeKabKota, Provinsi: "Jawa Barat"},
	})
	rows := []row{{ID: 1, Status: "lulus"}, {ID: 99, Status: "lulus"}, {ID: 2, Status: "tidak_lulus"}}
	owner := By(idx, rowID)

	tests := []struct {
		name string
		c    Criteria
		want []int64
	}{
		{"default keeps orphan", Criteria{}, []int64{1, 99, 2}},
		{"all keyword keeps orphan", Criteria{Type: "all", Status: "all"}, []int64{1, 99, 2}},
		{"type hides orphan", Criteria{Type: models.TypeKabKota}, []int64{2}},
		{"region hides orphan", Criteria{Region: "Jawa Barat"}, []int64{1, 2}},
		{"status hides orphan", Criteria{Status: "lulus"}, []int64{1}},
		{"no match", Criteria{Region: "Bali"}, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(rows, tt.c, owner, rowStatus))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_StatusWithoutColumn(t *testing.T) {
	idx := NewIndex([]models.Submission{{IDDinas: 1}})
	got := Filter([]row{{ID: 1}}, Criteria{Status: "lulus"}, By(idx, rowID), nil)
	if len(got) != 0 {
		t.Errorf("status filter on a table without status should match nothing, got %v", got)
	}
}

func TestNewIndex_FirstDuplicateWins(t *testing.T) {
	idx := NewIndex([]models.Submission{
		{IDDinas: 4, Tipe: models.TypeProvinsi, Provinsi: "Bali"},
		{IDDinas: 4, Tipe: models.TypeKabKota, Provinsi: "Jawa Timur"},
	})
	o, ok := idx.Owner(4)
	if !ok || o.Type != models.TypeProvinsi || o.Region != "Bali" {
		t.Errorf("Owner(4) = %+v, %v", o, ok)
	}
	got := Filter([]row{{ID: 4}}, Criteria{Region: "Jawa Timur"}, By(idx, rowID), nil)
	if len(got) != 0 {
		t.Errorf("later duplicate must not decide the region, got %v", got)
	}
}

func TestRegions(t *testing.T) {
	subs := []models.Submission{{Provinsi: "Bali"}, {Provinsi: "Aceh"}, {Provinsi: "Bali"}, {}}
	if got := Regions(subs); !reflect.DeepEqual(got, []string{"Bali", "Aceh"}) {
		t.Errorf("Regions = %v", got)
	}
}
