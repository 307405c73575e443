// Package wire defines the JSON request/response types exchanged between
// the master and a minion over HTTP. It owns only the wire shapes; the
// master's outbound client lives in internal/master, and the minion's
// inbound HTTP surface lives in internal/minion.
package wire
