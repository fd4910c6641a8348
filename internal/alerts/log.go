package alerts

import (
	"encoding/json"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/redissvc"
)

const (
	KindLowStock   = "low-stock"
	KindOutOfStock = "out-of-stock"
)

type StockAlert struct {
	ProductID   int       `json:"product_id"`
	ProductName string    `json:"product_name"`
	SKU         string    `json:"sku"`
	Kind        string    `json:"kind"`
	Stock       int       `json:"stock"`
	MinLevel    int       `json:"min_level"`
	Time        time.Time `json:"time"`
}

// AlertLog collects the alerts of the day until the digest drains them.
type AlertLog interface {
	Append(a StockAlert) error
	Drain() ([]StockAlert, error)
}

const DailyAlertLogKey = "inventory:stockalerts:daily"

type RedisAlertLog struct {
	rs *redissvc.RedisService
}

func NewRedisAlertLog(rs *redissvc.RedisService) *RedisAlertLog {
	return &RedisAlertLog{rs: rs}
}

func (l *RedisAlertLog) Append(a StockAlert) error {
	return l.rs.PushJSON(DailyAlertLogKey, a)
}

func (l *RedisAlertLog) Drain() ([]StockAlert, error) {
	items, err := l.rs.DrainList(DailyAlertLogKey)
	if err != nil {
		return nil, err
	}

	alerts := make([]StockAlert, 0, len(items))
	for _, item := range items {
		var a StockAlert
		if err := json.Unmarshal([]byte(item), &a); err != nil {
			log.Printf("Skipping malformed alert log entry: %v", err)
			continue
		}
		alerts = append(alerts, a)
	}
	return alerts, nil
}

type MemoryAlertLog struct {
	mu     sync.Mutex
	alerts []StockAlert
}

func NewMemoryAlertLog() *MemoryAlertLog {
	return &MemoryAlertLog{}
}

func (l *MemoryAlertLog) Append(a StockAlert) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.alerts = append(l.alerts, a)
	return nil
}

func (l *MemoryAlertLog) Drain() ([]StockAlert, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	drained := slices.Clone(l.alerts)
	l.alerts = nil
	return drained, nil
}
