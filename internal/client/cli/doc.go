// Package cli is the interactive geotracker client.
//
// App wires the configuration, the local store, the backend and lookup
// transports and the services, then runs a small REPL. Pages follow the web
// client: /auth/login, /auth/signup and the protected /home, with / leading
// to /home. Opening /home goes through a route guard that checks the session
// once and sends unauthenticated users to the login page.
package cli
