package redis

import (
	"encoding/json"
	"fmt"
	"time"
)

// Computed slot lists are cached per (vendor, date) for a short window.
// Only a new booking or an availability edit can change the result, and
// both of those invalidate, so the TTL is just a backstop.
const slotCacheTTL = 60 * time.Second

func slotKey(vendorID uint, date string) string {
	return fmt.Sprintf("slots:%d:%s", vendorID, date)
}

// GetCachedSlots returns the cached slot list, or ok=false on miss or when
// the cache is disabled.
func GetCachedSlots(vendorID uint, date string) ([]string, bool) {
	if Client == nil {
		return nil, false
	}
	raw, err := Client.Get(Ctx, slotKey(vendorID, date)).Result()
	if err != nil {
		return nil, false
	}
	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func CacheSlots(vendorID uint, date string, slots []string) {
	if Client == nil {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	Client.Set(Ctx, slotKey(vendorID, date), raw, slotCacheTTL)
}

// InvalidateSlots drops the cached list for one vendor/date, after a
// booking claims a slot there.
func InvalidateSlots(vendorID uint, date string) {
	if Client == nil {
		return
	}
	Client.Del(Ctx, slotKey(vendorID, date))
}

// InvalidateVendorSlots drops every cached date for a vendor, after an
// availability window changes.
func InvalidateVendorSlots(vendorID uint) {
	if Client == nil {
		return
	}
	keys, err := Client.Keys(Ctx, fmt.Sprintf("slots:%d:*", vendorID)).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	Client.Del(Ctx, keys...)
}
