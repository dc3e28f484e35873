package stages

import (
	"sort"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/sipelita/dashboard/internal/domain/models"
)

// Category is a ranking category.
type Category string

const (
	CatProvinsi        Category = "provinsi"
	CatKabupatenBesar  Category = "kabupaten_besar"
	CatKabupatenSedang Category = "kabupaten_sedang"
	CatKabupatenKecil  Category = "kabupaten_kecil"
	CatKotaBesar       Category = "kota_besar"
	CatKotaSedang      Category = "kota_sedang"
	CatKotaKecil       Category = "kota_kecil"
)

// Categories lists every ranking category in display order.
var Categories = []Category{
	CatProvinsi,
	CatKabupatenBesar, CatKabupatenSedang, CatKabupatenKecil,
	CatKotaBesar, CatKotaSedang, CatKotaKecil,
}

var categoryLabels = map[Category]string{
	CatProvinsi:        "Provinsi",
	CatKabupatenBesar:  "Kabupaten Besar",
	CatKabupatenSedang: "Kabupaten Sedang",
	CatKabupatenKecil:  "Kabupaten Kecil",
	CatKotaBesar:       "Kota Besar",
	CatKotaSedang:      "Kota Sedang",
	CatKotaKecil:       "Kota Kecil",
}

// Label returns the display name of c.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// ParseCategory returns the category for key, defaulting to provinsi.
func ParseCategory(key string) Category {
	c := Category(key)
	if _, ok := categoryLabels[c]; ok {
		return c
	}
	return CatProvinsi
}

// Kind selects how many ranked rows are requested.
type Kind string

const (
	KindTop5  Kind = "top5"
	KindTop10 Kind = "top10"
	KindAll   Kind = "all"
)

// ParseKind returns the kind for key, defaulting to top5.
func ParseKind(key string) Kind {
	switch Kind(key) {
	case KindTop10:
		return KindTop10
	case KindAll:
		return KindAll
	}
	return KindTop5
}

// RequestTop is the top parameter sent to the ranking endpoint. "all" asks
// for 999 rows.
func (k Kind) RequestTop() int {
	switch k {
	case KindTop10:
		return 10
	case KindAll:
		return 999
	}
	return 5
}

// BadgeTop is the rank cut-off for the Top-N badge. Viewing every row still
// highlights the top five.
func (k Kind) BadgeTop() int {
	if k == KindTop10 {
		return 10
	}
	return 5
}

// Label returns the selector label.
func (k Kind) Label() string {
	switch k {
	case KindTop10:
		return "Top 10"
	case KindAll:
		return "Semua"
	}
	return "Top 5"
}

// SortRanked orders rows by total score descending. Equal totals fall back
// to agency name, then agency id, and ranks are reassigned 1..n. Rows come
// back from the API already ranked; this keeps the order deterministic when
// the API leaves ties unresolved.
func SortRanked(rows []models.RankedRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.TotalSkor != b.TotalSkor {
			return a.TotalSkor > b.TotalSkor
		}
		an, bn := text.Fold(a.NamaDinas), text.Fold(b.NamaDinas)
		if an != bn {
			return an < bn
		}
		return a.IDDinas < b.IDDinas
	})
	for i := range rows {
		rows[i].Peringkat = i + 1
	}
}
