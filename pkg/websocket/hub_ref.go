package websocket

import "sync/atomic"

// HubRef points at the currently running Hub so the server can replace a hub
// that panicked without restarting HTTP.
type HubRef struct {
	v atomic.Pointer[Hub]
}

func NewHubRef(initial *Hub) *HubRef {
	r := &HubRef{}
	r.v.Store(initial)
	return r
}

func (r *HubRef) Get() (*Hub, bool) {
	h := r.v.Load()
	return h, h != nil
}

func (r *HubRef) Set(h *Hub) {
	r.v.Store(h)
}

// Broadcast forwards to the current hub, if any.
func (r *HubRef) Broadcast(room, typ string, payload any) {
	if h, ok := r.Get(); ok {
		h.Broadcast(room, typ, payload)
	}
}
