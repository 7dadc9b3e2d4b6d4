package keychain

import "github.com/systmms/vaultkit/internal/metrics"

// instrumentedConn wraps a Conn and records one counter increment per
// primitive call, labeled by operation and resulting status.
type instrumentedConn struct {
	next Conn
}

// Instrument returns a Conn that records Prometheus metrics for every call
// before delegating to next.
func Instrument(next Conn) Conn {
	return &instrumentedConn{next: next}
}

func (c *instrumentedConn) CopyMatching(q Query) (Status, []Item) {
	st, items := c.next.CopyMatching(q)
	metrics.RecordBackendOp("copy_matching", st.String())
	return st, items
}

func (c *instrumentedConn) Add(q Query) Status {
	st := c.next.Add(q)
	metrics.RecordBackendOp("add", st.String())
	return st
}

func (c *instrumentedConn) Update(q Query, attrs Query) Status {
	st := c.next.Update(q, attrs)
	metrics.RecordBackendOp("update", st.String())
	return st
}

func (c *instrumentedConn) DeleteMatching(q Query) Status {
	st := c.next.DeleteMatching(q)
	metrics.RecordBackendOp("delete_matching", st.String())
	return st
}
