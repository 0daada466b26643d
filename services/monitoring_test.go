package services

import (
	"testing"
	"time"
)

func TestMonitoringStartDoesNotBlock(t *testing.T) {
	t.Setenv("PROMETHEUS_PORT", "0")

	svc := &MonitoringService{}
	t.Cleanup(svc.Shutdown)

	done := make(chan error, 1)
	go func() { done <- svc.Start() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("start: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start must return; services registered after it never start otherwise")
	}
}
