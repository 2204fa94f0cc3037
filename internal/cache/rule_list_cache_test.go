package cache

import (
	"testing"
	"time"

	"github.com/SscSPs/bank_rules_app/internal/dto"
	"github.com/stretchr/testify/assert"
)

func TestRuleListCache(t *testing.T) {
	c := NewRuleListCache(time.Minute)

	_, ok := c.Get()
	assert.False(t, ok)

	items := []dto.RuleListItem{{ID: 1}, {ID: 2}}
	c.Set(items)
	got, ok := c.Get()
	assert.True(t, ok)
	assert.Equal(t, items, got)

	c.Invalidate()
	_, ok = c.Get()
	assert.False(t, ok)
}

func TestRuleListCache_Expiry(t *testing.T) {
	c := NewRuleListCache(20 * time.Millisecond)
	c.Set([]dto.RuleListItem{{ID: 1}})

	time.Sleep(40 * time.Millisecond)
	_, ok := c.Get()
	assert.False(t, ok)
}

func TestRuleListCache_WrongTypeIsDropped(t *testing.T) {
	c := NewRuleListCache(time.Minute)
	c.store.SetDefault(ruleListKey, "garbage")

	_, ok := c.Get()
	assert.False(t, ok)
	_, found := c.store.Get(ruleListKey)
	assert.False(t, found)
}
