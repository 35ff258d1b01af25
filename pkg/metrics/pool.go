package metrics

// SetPoolStats публикует статистику connection pool
func (m *Metrics) SetPoolStats(open, inUse, idle int) {
	m.DBOpenConnections.Set(float64(open))
	m.DBInUse.Set(float64(inUse))
	m.DBIdle.Set(float64(idle))
}
