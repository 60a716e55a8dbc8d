/*
Package domain contains the core domain models of the Infobot engine.

It defines the catalog entities and the per-conversation dialogue state. This package is
kept pure and free of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Record: One catalog entry (a college) with a fixed attribute schema.
  - Money: A normalized currency amount, comparable as a number.
  - Session: The runtime snapshot of a conversation (Focused Entity, Pending Mode, Transcript).
  - PendingMode: The single-use expectation governing how the next utterance is read.
  - Intent: Which routing rule handled a turn.
*/
package domain
