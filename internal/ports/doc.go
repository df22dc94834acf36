// Package ports defines interfaces between layers in the hexagonal architecture.
// Repository ports are implemented by the storage adapters (memory, sqlstore)
// and called by the HTTP handlers.
package ports
