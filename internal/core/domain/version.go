package domain

import "time"

// RuleVersion is an immutable snapshot of a rule taken at create or update.
type RuleVersion struct {
	RuleID    int64     `json:"ruleId"`
	Version   int       `json:"version"`
	Content   Rule      `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}
