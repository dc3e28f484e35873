// internal/domain/models/dashboard.go
package models

// DashboardStats is the response of /api/pusdatin/dashboard/stats.
type DashboardStats struct {
	TotalDLH      int    `json:"total_dlh"`
	Buku1Upload   int    `json:"buku1_upload"`
	Buku1Approved int    `json:"buku1_approved"`
	Buku2Upload   int    `json:"buku2_upload"`
	Buku2Approved int    `json:"buku2_approved"`
	IKLHUpload    int    `json:"iklh_upload"`
	IKLHApproved  int    `json:"iklh_approved"`
	AvgNilaiSLHD  string `json:"avg_nilai_slhd"`
}

// Notifications is the response of /api/pusdatin/dashboard/notifications.
// Both fields may carry limited HTML.
type Notifications struct {
	Announcement *string `json:"announcement"`
	Notification *string `json:"notification"`
}

// AdminStats is the response of /api/admin/dashboard.
type AdminStats struct {
	TotalUsersAktif   int `json:"total_users_aktif"`
	TotalUsersPending int `json:"total_users_pending"`
}
