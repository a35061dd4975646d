// Package session owns the session-identity contract.
//
// A Manager stores at most one attached Identity per client session on top
// of scs. The session token travels in a cookie; session data lives in an
// scs.Store (memstore, or Redis through goredisstore). Gate makes the
// per-request allow/deny decisions and never writes.
package session
