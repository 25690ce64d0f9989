// Package redis connects to a Redis server with startup retries and exposes
// a readiness probe. The session store builds on the returned client.
package redis
