/*
Package ports defines the driven ports (interfaces) for the Infobot engine.

These interfaces decouple the dialogue core from external implementations, allowing
the engine to work with various catalog sources and session storage backends.

# Key Interfaces

  - RecordStore: The two catalog lookups the query resolvers depend on.
  - SessionStore: Responsible for persisting and loading session state.
  - DistributedLocker: Provides distributed locking for handling concurrent session access.
*/
package ports
