// FILE: internal/dto/admin_log_dto.go
package dto

import "time"

// Log ids are MD5 hashes of the raw line, not UUIDs.
type LogListResponse struct {
	Id        string    `json:"id"`
	Level     string    `json:"level"`
	Module    string    `json:"module"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type LogDetailResponse struct {
	LogListResponse
	Details map[string]interface{} `json:"details"`
}

type AdminDashboardStats struct {
	ActiveOptions int64 `json:"activeOptions"`
	TotalLeads    int64 `json:"totalLeads"`
	NewLeads      int64 `json:"newLeads"`
	OpenSessions  int64 `json:"openSessions"`
	QuoteSessions int64 `json:"quoteSessions"`
}
