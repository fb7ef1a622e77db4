// Package app wires the compiler together: logger, connector registry,
// pipeline loader, orchestrator and emission. It owns the only impure
// edges of the system (reading pipeline files, writing emitted units), so
// everything between stays a pure (config, catalog) -> repository function.
package app
