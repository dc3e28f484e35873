// internal/domain/models/parsed.go
package models

// ParsedSLHD is one agency's parsed SLHD chapter scores. Bab 2 is split into
// twelve matra sub-scores.
type ParsedSLHD struct {
	ID        int64    `json:"id"`
	IDDinas   int64    `json:"id_dinas"`
	NamaDinas string   `json:"nama_dinas"`
	Provinsi  string   `json:"provinsi,omitempty"`
	Bab1      *float64 `json:"Bab_1"`

	JumlahPemanfaatanPelayananLaboratorium *float64 `json:"Jumlah_Pemanfaatan_Pelayanan_Laboratorium"`
	DayaDukungDanDayaTampung               *float64 `json:"Daya_Dukung_dan_Daya_Tampung_Lingkungan_Hidup"`
	KajianLingkunganHidupStrategis         *float64 `json:"Kajian_Lingkungan_Hidup_Strategis"`
	KeanekaragamanHayati                   *float64 `json:"Keanekaragaman_Hayati"`
	KualitasAir                            *float64 `json:"Kualitas_Air"`
	LautPesisirDanPantai                   *float64 `json:"Laut_Pesisir_dan_Pantai"`
	KualitasUdara                          *float64 `json:"Kualitas_Udara"`
	PengelolaanSampahDanLimbah             *float64 `json:"Pengelolaan_Sampah_dan_Limbah"`
	LahanDanHutan                          *float64 `json:"Lahan_dan_Hutan"`
	PerubahanIklim                         *float64 `json:"Perubahan_Iklim"`
	RisikoBencana                          *float64 `json:"Risiko_Bencana"`
	PenetapanIsuPrioritas                  *float64 `json:"Penetapan_Isu_Prioritas"`

	Bab3      *float64 `json:"Bab_3"`
	Bab4      *float64 `json:"Bab_4"`
	Bab5      *float64 `json:"Bab_5"`
	TotalSkor *float64 `json:"Total_Skor"`
	Status    string   `json:"status"`
}

// Matra returns the twelve Bab 2 sub-scores in their fixed order.
func (p ParsedSLHD) Matra() [12]*float64 {
	return [12]*float64{
		p.JumlahPemanfaatanPelayananLaboratorium,
		p.DayaDukungDanDayaTampung,
		p.KajianLingkunganHidupStrategis,
		p.KeanekaragamanHayati,
		p.KualitasAir,
		p.LautPesisirDanPantai,
		p.KualitasUdara,
		p.PengelolaanSampahDanLimbah,
		p.LahanDanHutan,
		p.PerubahanIklim,
		p.RisikoBencana,
		p.PenetapanIsuPrioritas,
	}
}

// ParsedAward is one agency's parsed award-category scores.
type ParsedAward struct {
	ID            int64    `json:"id"`
	IDDinas       int64    `json:"id_dinas"`
	NamaDinas     string   `json:"nama_dinas"`
	AdipuraSkor   *float64 `json:"Adipura_Skor"`
	AdipuraMax    *float64 `json:"Adipura_Skor_Max"`
	AdiwiyataSkor *float64 `json:"Adiwiyata_Skor"`
	AdiwiyataMax  *float64 `json:"Adiwiyata_Skor_Max"`
	ProklimSkor   *float64 `json:"Proklim_Skor"`
	ProklimMax    *float64 `json:"Proklim_Skor_Max"`
	ProperSkor    *float64 `json:"Proper_Skor"`
	ProperMax     *float64 `json:"Proper_Skor_Max"`
	KalpataruSkor *float64 `json:"Kalpataru_Skor"`
	KalpataruMax  *float64 `json:"Kalpataru_Skor_Max"`
	TotalSkor     *float64 `json:"Total_Skor"`
	Status        string   `json:"status"`
}
