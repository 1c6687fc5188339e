// Package port implements the dashboard port availability probe used by
// the doctor command and the pre-launch notice.
//
// The probe asks the operating system directly by attempting a TCP bind
// with net.Listen. This is more reliable than parsing /proc/net/* or
// shelling out to lsof/ss, which may require elevated permissions. A
// failed bind means some process — quite possibly an earlier dashboard
// instance — is already serving on that port.
package port

import (
	"fmt"
	"net"
)

// Probe checks whether the dashboard's TCP port is free on the host.
//
// The struct is stateless; it exists as a receiver so future options
// (bind address, probe timeout) can be added without breaking callers,
// and so the probe is injectable as a dependency in doctor tests.
type Probe struct{}

// NewProbe creates a new Probe instance.
func NewProbe() *Probe {
	return &Probe{}
}

// IsFree reports whether the given TCP port can currently be bound.
//
// The bind targets all interfaces (":port" rather than "127.0.0.1:port")
// because the dashboard serves on 0.0.0.0 — probing the same address
// space avoids false positives from loopback-only checks. The listener is
// closed immediately; only bindability is of interest.
//
// Ports outside 1-65535 report as not free.
func (p *Probe) IsFree(port int) bool {
	if port < 1 || port > 65535 {
		return false
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	defer func() { _ = listener.Close() }()
	return true
}
