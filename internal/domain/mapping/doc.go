// Package mapping contains the Mapping bounded context.
// This context translates storefront-side codes (payment gateway names,
// shipping method codes, fixed business values) into ERP-side identifiers.
//
// Key concepts:
//   - Category: the five field-translation domains (payment, shipment,
//     order header, order line, customer)
//   - Entry: a single source-code -> target-identifier mapping
//   - Default: per-category fallback used when no entry matches
//   - Snapshot: an immutable in-memory view of the active entries, used by
//     the resolver and validator so validation runs are deterministic
//   - Error: a structured, user-actionable report of an unmapped code
//
// The resolver, validator and aggregator are pure functions over a
// Snapshot. Persistence is behind the Repository interfaces; closing a
// mapping gap means creating a new Entry and re-running aggregation over a
// fresh Snapshot.
package mapping
