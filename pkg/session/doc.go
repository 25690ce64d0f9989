// Package session implements cookie-backed server-side sessions. The cookie
// carries only an opaque random token; the Session record with user identity
// lives in a Store (memory or Redis).
package session
