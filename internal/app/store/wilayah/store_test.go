package wilayah_test

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/sipelita/dashboard/internal/app/store/wilayah"
	"github.com/sipelita/dashboard/internal/testutil"
)

func TestProvinces_SortedByName(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.JSON("GET", "/api/wilayah/provinces", http.StatusOK, map[string]any{
		"data": []map[string]any{
			{"id": "32", "nama_region": "Jawa Barat"},
			{"id": 11, "name": "Aceh"},
			{"id": "51", "nama_region": "bali"},
		},
	})
	s := wilayah.New(api.Factory(t).Anonymous())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ps, err := s.Provinces(ctx)
	if err != nil {
		t.Fatalf("Provinces: %v", err)
	}
	got := wilayah.ProvinceNames(ps)
	want := []string{"Aceh", "bali", "Jawa Barat"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("names = %v, want %v", got, want)
	}
	if ps[0].ID.String() != "11" {
		t.Errorf("numeric id not kept: %q", ps[0].ID)
	}
}

func TestProvinces_NotFound(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	s := wilayah.New(api.Factory(t).Anonymous())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ps, err := s.Provinces(ctx)
	if err != nil || len(ps) != 0 {
		t.Errorf("got %v, %v", ps, err)
	}
}
