// Package circuits is the circuit metadata feature: the gorm persistence
// layer behind the provider synchronization engine and the REST surface for
// managing provider API configurations and reading synced data.
//
// # Responsibilities
//
//   - Models: circuits, costs, contracts, tickets, paths and provider API
//     configurations (feature/circuits/models).
//   - Store: implements core/provider.Store on top of GORM and object
//     storage. Cost and ticket upserts compare stored fields before writing;
//     path archives are fingerprinted with SHA-256 so unchanged payloads are
//     no-ops. That is what makes repeated syncs idempotent.
//   - Service: configuration CRUD with provider-type validation, sync and
//     test triggers through the provider engine, contract document handling.
//   - Handler: the Fiber routes, including POST /configs/{id}/sync and
//     POST /sync for bulk runs.
//
// Credentials on a configuration are write-only: the model serializes
// without them, and no handler ever echoes them back.
package circuits
