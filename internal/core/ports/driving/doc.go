// Package driving defines the inbound ports of the core: the service
// interfaces adapters (CLI, MCP) call into.
package driving
