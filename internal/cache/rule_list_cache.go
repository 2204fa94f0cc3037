package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	portssvc "github.com/SscSPs/bank_rules_app/internal/core/ports/services"
	"github.com/SscSPs/bank_rules_app/internal/dto"
	"github.com/SscSPs/bank_rules_app/internal/metrics"
)

const ruleListKey = "rule-list"

// RuleListCache keeps the rule overview in memory for a short TTL.
type RuleListCache struct {
	store *gocache.Cache
}

// NewRuleListCache creates a cache whose entries expire after ttl.
func NewRuleListCache(ttl time.Duration) *RuleListCache {
	return &RuleListCache{store: gocache.New(ttl, 2*ttl)}
}

var _ portssvc.RuleListCache = (*RuleListCache)(nil)

// Get returns the cached overview, if present.
func (c *RuleListCache) Get() ([]dto.RuleListItem, bool) {
	v, ok := c.store.Get(ruleListKey)
	if !ok {
		metrics.RuleListCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	items, ok := v.([]dto.RuleListItem)
	if !ok {
		c.store.Delete(ruleListKey)
		metrics.RuleListCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.RuleListCacheLookups.WithLabelValues("hit").Inc()
	return items, true
}

// Set stores the overview with the default TTL.
func (c *RuleListCache) Set(items []dto.RuleListItem) {
	c.store.SetDefault(ruleListKey, items)
}

// Invalidate drops the cached overview.
func (c *RuleListCache) Invalidate() {
	c.store.Delete(ruleListKey)
}
