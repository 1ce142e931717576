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
//   - IdentityProvider: Push-based sign-in state (OAuth browser flow or static token)
//   - PathwayAPI: Plan generation, retrieval, listing and progress mutation
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - AssistantAPI: Chat and motivational tips. Without it, the assistant views are disabled.
//   - SurfaceRenderer and DocumentWriter: Paginated document export. Without them, only
//     text and YAML exports are available.
//   - ExportLog: Export history. Without it, exports are not recorded.
//   - CredentialsStore: Token persistence between runs. Without it, sign-in lasts one process.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
