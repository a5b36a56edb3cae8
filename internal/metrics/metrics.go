// Package metrics provides lightweight, lock-free counters for tracking
// runtime statistics of a chat session.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"io"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Collector tracks runtime metrics for a chat session.
// A nil Collector is safe to use; all methods become no-ops.
type Collector struct {
	connectionsActive atomic.Int64
	connectionsTotal  atomic.Int64
	bytesIn           atomic.Int64
	bytesOut          atomic.Int64
	eventsIn          atomic.Int64
	commandsOut       atomic.Int64
	malformed         atomic.Int64
	serverErrors      atomic.Int64
	errorsTotal       atomic.Int64

	mu            sync.RWMutex
	startTime     time.Time
	lastHeartbeat time.Time
	lastError     time.Time
	lastErrorMsg  string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Connection metrics ───────────────────────────────────────────────

// ConnectionOpened increments both the active and total counters.
func (c *Collector) ConnectionOpened() {
	if c == nil {
		return
	}
	c.connectionsActive.Add(1)
	c.connectionsTotal.Add(1)
}

// ConnectionClosed decrements the active connection counter.
func (c *Collector) ConnectionClosed() {
	if c == nil {
		return
	}
	c.connectionsActive.Add(-1)
}

// ActiveConnections returns the current number of open connections.
func (c *Collector) ActiveConnections() int64 {
	if c == nil {
		return 0
	}
	return c.connectionsActive.Load()
}

// TotalConnections returns the lifetime connection count.
func (c *Collector) TotalConnections() int64 {
	if c == nil {
		return 0
	}
	return c.connectionsTotal.Load()
}

// ── I/O metrics ──────────────────────────────────────────────────────

// BytesReceived records n bytes read from the network.
func (c *Collector) BytesReceived(n int64) {
	if c == nil {
		return
	}
	c.bytesIn.Add(n)
}

// BytesSent records n bytes written to the network.
func (c *Collector) BytesSent(n int64) {
	if c == nil {
		return
	}
	c.bytesOut.Add(n)
}

// TotalBytesIn returns total bytes received.
func (c *Collector) TotalBytesIn() int64 {
	if c == nil {
		return 0
	}
	return c.bytesIn.Load()
}

// TotalBytesOut returns total bytes sent.
func (c *Collector) TotalBytesOut() int64 {
	if c == nil {
		return 0
	}
	return c.bytesOut.Load()
}

// ── Protocol metrics ─────────────────────────────────────────────────

// EventReceived records one inbound named event.
func (c *Collector) EventReceived() {
	if c == nil {
		return
	}
	c.eventsIn.Add(1)
}

// EventsReceived returns the inbound event count.
func (c *Collector) EventsReceived() int64 {
	if c == nil {
		return 0
	}
	return c.eventsIn.Load()
}

// CommandSent records one outbound command.
func (c *Collector) CommandSent() {
	if c == nil {
		return
	}
	c.commandsOut.Add(1)
}

// CommandsSent returns the outbound command count.
func (c *Collector) CommandsSent() int64 {
	if c == nil {
		return 0
	}
	return c.commandsOut.Load()
}

// MalformedPayload records an inbound payload that failed to decode.
func (c *Collector) MalformedPayload() {
	if c == nil {
		return
	}
	c.malformed.Add(1)
}

// MalformedPayloads returns the malformed payload count.
func (c *Collector) MalformedPayloads() int64 {
	if c == nil {
		return 0
	}
	return c.malformed.Load()
}

// ServerError records a server-reported application error.
func (c *Collector) ServerError() {
	if c == nil {
		return
	}
	c.serverErrors.Add(1)
}

// ServerErrors returns the server error count.
func (c *Collector) ServerErrors() int64 {
	if c == nil {
		return 0
	}
	return c.serverErrors.Load()
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Heartbeat ────────────────────────────────────────────────────────

// RecordHeartbeat updates the last heartbeat timestamp.
func (c *Collector) RecordHeartbeat() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.lastHeartbeat = time.Now()
	c.mu.Unlock()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime            string `json:"uptime"`
	ConnectionsActive int64  `json:"connections_active"`
	ConnectionsTotal  int64  `json:"connections_total"`
	BytesIn           int64  `json:"bytes_in"`
	BytesOut          int64  `json:"bytes_out"`
	EventsIn          int64  `json:"events_in"`
	CommandsOut       int64  `json:"commands_out"`
	MalformedPayloads int64  `json:"malformed_payloads"`
	ServerErrors      int64  `json:"server_errors"`
	ErrorsTotal       int64  `json:"errors_total"`
	LastHeartbeat     string `json:"last_heartbeat,omitempty"`
	LastError         string `json:"last_error,omitempty"`
	LastErrorMessage  string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:            time.Since(c.startTime).Truncate(time.Second).String(),
		ConnectionsActive: c.connectionsActive.Load(),
		ConnectionsTotal:  c.connectionsTotal.Load(),
		BytesIn:           c.bytesIn.Load(),
		BytesOut:          c.bytesOut.Load(),
		EventsIn:          c.eventsIn.Load(),
		CommandsOut:       c.commandsOut.Load(),
		MalformedPayloads: c.malformed.Load(),
		ServerErrors:      c.serverErrors.Load(),
		ErrorsTotal:       c.errorsTotal.Load(),
	}
	if !c.lastHeartbeat.IsZero() {
		s.LastHeartbeat = c.lastHeartbeat.Format(time.RFC3339)
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}

// WriteTable renders the snapshot as a two-column table.
func (c *Collector) WriteTable(w io.Writer) {
	s := c.Snapshot()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)

	rows := [][]string{
		{"uptime", s.Uptime},
		{"connections", strconv.FormatInt(s.ConnectionsTotal, 10)},
		{"bytes in", strconv.FormatInt(s.BytesIn, 10)},
		{"bytes out", strconv.FormatInt(s.BytesOut, 10)},
		{"events in", strconv.FormatInt(s.EventsIn, 10)},
		{"commands out", strconv.FormatInt(s.CommandsOut, 10)},
		{"malformed payloads", strconv.FormatInt(s.MalformedPayloads, 10)},
		{"server errors", strconv.FormatInt(s.ServerErrors, 10)},
		{"errors", strconv.FormatInt(s.ErrorsTotal, 10)},
	}
	if s.LastErrorMessage != "" {
		rows = append(rows, []string{"last error", s.LastErrorMessage})
	}
	table.AppendBulk(rows)
	table.Render()
}
