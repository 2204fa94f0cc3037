package domain

import "time"

// AuditFields holds who created and last changed an entity and when.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"updatedAt"`
	LastUpdatedBy string    `json:"updatedBy"`
}
