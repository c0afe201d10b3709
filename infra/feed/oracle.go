package feed

import (
	"sync"

	"fenrir/domain/dlob"
)

type oracleKey struct {
	marketType  dlob.MarketType
	marketIndex uint16
}

// OracleCache holds the latest oracle observation per market. Readers get a
// copy; the cache never hands out shared pointers.
type OracleCache struct {
	mu     sync.RWMutex
	prices map[oracleKey]dlob.OraclePriceData
}

func NewOracleCache() *OracleCache {
	return &OracleCache{prices: make(map[oracleKey]dlob.OraclePriceData)}
}

// Set stores an observation. Updates carrying an older slot than the cached
// one are dropped so a lagging partition cannot rewind a market's price.
func (c *OracleCache) Set(mt dlob.MarketType, idx uint16, data dlob.OraclePriceData) bool {
	k := oracleKey{marketType: mt, marketIndex: idx}
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.prices[k]; ok && data.Slot < cur.Slot {
		return false
	}
	c.prices[k] = data
	return true
}

// Get returns the latest observation for a market, if any.
func (c *OracleCache) Get(mt dlob.MarketType, idx uint16) (dlob.OraclePriceData, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.prices[oracleKey{marketType: mt, marketIndex: idx}]
	return d, ok
}
