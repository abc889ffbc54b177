/*
Package ports defines the driven ports (interfaces) shared by the process loggers.

These interfaces decouple the loggers from the exploration engine that drives
them and from the storage their artifacts end up in.

# Key Interfaces

  - ProcessLogger: Consumes the lifecycle callbacks of one exploration run.
  - ArtifactSink: Receives the named artifacts a logger emits (files, Redis keys, memory).
*/
package ports
