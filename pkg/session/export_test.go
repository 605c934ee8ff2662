package session

// ActiveLocks exposes the lock table size to external tests.
func ActiveLocks(m *Manager) int {
	if m.locks == nil {
		return 0
	}
	return m.locks.len()
}
