// Package reconcile implements the per-record reconciliation decision.
//
// It is pure logic: given one source record and an accessor into the replica,
// One decides create vs. update vs. disambiguated create and delegates the
// actual persistence to the accessor. Re-running reconciliation with no
// upstream changes is a no-op at the data level (idempotence), because an
// existing identity always takes the partial-update path.
//
// Natural-key collisions (same business key, different identity) are resolved
// by writing the incoming record under "<naturalKey>-<identity>". This trades
// an occasional duplicate-looking record for a guarantee that no data is lost
// when the natural-key heuristic is imperfect. Disambiguated records are never
// reconciled back to a canonical entry; see the backup package docs for the
// known limitation.
package reconcile
