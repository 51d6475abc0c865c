// Package auth implements the identity service inside postline: credential
// storage, session token issuance/verification, and the per-request session
// resolver.
//
// Layering:
// - domain: core errors and invariants
// - application: identity use-cases and the session resolver using explicit ports
// - ports: stable boundaries for persistence, hashing, and token signing
// - adapters: concrete HTTP, memory, postgres, and crypto implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under the identity context.
// - Do not import other context adapters into domain/application.
// - The session context type lives in contracts/session so other contexts
//   can consume it without importing this module.
package auth
