/*
Package ports defines the driven ports (interfaces) for the Turing driver.

These interfaces decouple the engine façade from external implementations,
allowing machines to be loaded from different sources and runs to be
cached in different backends.

# Key Interfaces

  - DefinitionLoader: Responsible for loading machine Definitions (e.g., from Loam, Memory or the embedded library).
  - RunStore: Responsible for persisting and loading finished Runs.
  - Watchable: Optional change notification for loaders backed by a filesystem.
*/
package ports
