package platform

// monitorRegistry hands out stable MonitorHandles for native monitor
// identities. K must compare equal for the same native monitor.
type monitorRegistry[K comparable] struct {
	keys    map[MonitorHandle]K
	handles map[K]MonitorHandle
	next    MonitorHandle
}

func newMonitorRegistry[K comparable]() *monitorRegistry[K] {
	return &monitorRegistry[K]{
		keys:    make(map[MonitorHandle]K),
		handles: make(map[K]MonitorHandle),
	}
}

// handle returns the handle for k, assigning a new one on first sight.
func (r *monitorRegistry[K]) handle(k K) MonitorHandle {
	if h, ok := r.handles[k]; ok {
		return h
	}
	r.next++
	r.keys[r.next] = k
	r.handles[k] = r.next
	return r.next
}

// lookup returns the handle for k without registering it.
func (r *monitorRegistry[K]) lookup(k K) (MonitorHandle, bool) {
	h, ok := r.handles[k]
	return h, ok
}

func (r *monitorRegistry[K]) key(h MonitorHandle) (K, bool) {
	k, ok := r.keys[h]
	return k, ok
}

// remove forgets k and returns the handle it had.
func (r *monitorRegistry[K]) remove(k K) (MonitorHandle, bool) {
	h, ok := r.handles[k]
	if !ok {
		return 0, false
	}
	delete(r.handles, k)
	delete(r.keys, h)
	return h, true
}

// reset forgets every monitor. Handles are not reused.
func (r *monitorRegistry[K]) reset() {
	clear(r.keys)
	clear(r.handles)
}
