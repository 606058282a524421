// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - BlobProvider: Yields the decoded form-definition blob for a reference
//   - FieldMapSink: Receives a finished extraction
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ExtractionStore: Extraction history. Without it, history is disabled.
//   - PlanStore: Response plan persistence, needed only for plan commands.
//   - ResponseSubmitter: Posts form responses, needed only for submit.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
