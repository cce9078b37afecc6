/*
Package ports defines the driven ports (interfaces) for the arbor grammar engine.

These interfaces decouple the core logic from external implementations, allowing
grammars to come from various sources and geometry to be cached in various backends.

# Key Interfaces

  - GrammarReader: Fetches grammar text by path (e.g., from the filesystem or memory).
  - Watchable: Notifies about grammar edits for live preview.
  - BranchCache: Stores interpreted branches keyed by grammar hash and parameters.
  - DistributedLocker: Coordinates replicas filling the same cache entry.
  - Generator: Stateless generation used by the HTTP and MCP adapters.
*/
package ports
