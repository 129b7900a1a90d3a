// Package client is the transport layer of the geotracker CLI.
//
// Client is the backend contract (session and history endpoints) and
// HTTPClient its JSON-over-HTTP implementation; the session cookie travels in
// the http.Client's jar. Locator resolves addresses to geolocation records,
// with IPInfoLocator talking to ipinfo.io. PersistentJar keeps the backend
// cookies in the local SQLite store opened by OpenLocalStore.
//
// Failures are reported with sentinels matched by errors.Is (ErrUnauthorized,
// ErrUnavailable, ErrTimedOut, ErrLookupMiss). Non-2xx responses are
// *APIError values carrying the server's message when it sent one.
package client
