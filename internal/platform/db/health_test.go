package db

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPoolStats_JSONFieldNames(t *testing.T) {
	stats := PoolStats{
		TotalConns:      4,
		IdleConns:       2,
		AcquiredConns:   2,
		MaxConns:        10,
		AcquireCount:    37,
		AcquireDuration: "250ms",
		Healthy:         true,
	}

	data, err := json.Marshal(stats)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	body := string(data)
	for _, key := range []string{
		`"totalConns":4`,
		`"idleConns":2`,
		`"acquiredConns":2`,
		`"maxConns":10`,
		`"acquireCount":37`,
		`"acquireDuration":"250ms"`,
		`"healthy":true`,
	} {
		if !strings.Contains(body, key) {
			t.Errorf("expected %s in %s", key, body)
		}
	}
}

func TestPoolStats_UnhealthyWhenNoConnections(t *testing.T) {
	stats := PoolStats{TotalConns: 0, MaxConns: 10}
	if stats.Healthy {
		t.Error("expected Healthy to be false when TotalConns is 0")
	}
}
