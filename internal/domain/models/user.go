// internal/domain/models/user.go
package models

// Role names as sent by the API. Comparisons are case-insensitive.
const (
	RoleAdmin    = "admin"
	RolePusdatin = "pusdatin"
	RoleProvinsi = "provinsi"
	RoleKabKota  = "kabupaten/kota"
)

// Role is the role object embedded in the login response.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// JenisDLH is the agency kind (provincial or regency/city DLH).
type JenisDLH struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User is the authenticated account returned by POST /api/login.
// Token is only present in the login response.
type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	RoleID       int64      `json:"role_id"`
	Role         Role       `json:"role"`
	JenisDLHID   *int64     `json:"jenis_dlh_id,omitempty"`
	JenisDLH     *JenisDLH  `json:"jenis_dlh,omitempty"`
	Phone        string     `json:"nomor_telepon,omitempty"`
	ProvinceID   FlexString `json:"province_id,omitempty"`
	RegencyID    FlexString `json:"regency_id,omitempty"`
	ProvinceName string     `json:"province_name,omitempty"`
	RegencyName  string     `json:"regency_name,omitempty"`
	Coastal      string     `json:"pesisir,omitempty"`
	Token        string     `json:"token,omitempty"`
}

// Province is one entry of /api/wilayah/provinces.
type Province struct {
	ID         FlexString `json:"id"`
	NamaRegion string     `json:"nama_region"`
	Name       string     `json:"name"`
}

// DisplayName returns whichever name field the endpoint populated.
func (p Province) DisplayName() string {
	if p.NamaRegion != "" {
		return p.NamaRegion
	}
	return p.Name
}
