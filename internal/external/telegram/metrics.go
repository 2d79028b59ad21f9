package telegram

import (
	"sync"
	"time"
)

// Metrics содержит счетчики обработанных обновлений
type Metrics struct {
	mu             sync.RWMutex
	totalRequests  int64
	totalErrors    int64
	totalDuration  time.Duration
	routeRequests  map[string]int64
	routeErrors    map[string]int64
	routeDurations map[string]time.Duration
}

// MetricsSnapshot копия метрик на момент вызова
type MetricsSnapshot struct {
	TotalRequests  int64
	TotalErrors    int64
	TotalDuration  time.Duration
	RouteRequests  map[string]int64
	RouteErrors    map[string]int64
	RouteDurations map[string]time.Duration
}

// NewMetrics создает новые метрики
func NewMetrics() *Metrics {
	return &Metrics{
		routeRequests:  make(map[string]int64),
		routeErrors:    make(map[string]int64),
		routeDurations: make(map[string]time.Duration),
	}
}

func (m *Metrics) observe(route string, duration time.Duration, isError bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalRequests++
	m.totalDuration += duration
	m.routeRequests[route]++
	m.routeDurations[route] += duration

	if isError {
		m.totalErrors++
		m.routeErrors[route]++
	}
}

// Snapshot возвращает глубокую копию метрик
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := MetricsSnapshot{
		TotalRequests:  m.totalRequests,
		TotalErrors:    m.totalErrors,
		TotalDuration:  m.totalDuration,
		RouteRequests:  make(map[string]int64, len(m.routeRequests)),
		RouteErrors:    make(map[string]int64, len(m.routeErrors)),
		RouteDurations: make(map[string]time.Duration, len(m.routeDurations)),
	}

	for k, v := range m.routeRequests {
		s.RouteRequests[k] = v
	}
	for k, v := range m.routeErrors {
		s.RouteErrors[k] = v
	}
	for k, v := range m.routeDurations {
		s.RouteDurations[k] = v
	}

	return s
}

// Reset сбрасывает метрики
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalRequests = 0
	m.totalErrors = 0
	m.totalDuration = 0
	m.routeRequests = make(map[string]int64)
	m.routeErrors = make(map[string]int64)
	m.routeDurations = make(map[string]time.Duration)
}
