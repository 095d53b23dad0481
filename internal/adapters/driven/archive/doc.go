// Package archive implements the driven gateway ports against the
// arsip backend's HTTP API. Each gateway normalises the server's JSON
// envelopes into domain types and maps HTTP failures onto the domain
// error sentinels.
package archive
