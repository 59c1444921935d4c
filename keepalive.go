package hotelcore

import (
	"context"
	"sync/atomic"
	"time"

	"hotelcore/internal/wire"
)

// keepaliveLoop sleeps keepaliveInterval, then emits a latency-ping with a
// monotonically increasing request id, repeating until ctx is canceled.
func (s *Session) keepaliveLoop(ctx context.Context) {
	var nextRequestID int64
	ticker := time.NewTicker(keepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			id := atomic.AddInt64(&nextRequestID, 1)
			frame := wire.NewOutFrame(s.cfg.Outgoing.LatencyPingRequest).WriteI32(int32(id))
			s.send(frame)
		}
	}
}
