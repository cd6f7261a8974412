// Package backup implements the cross-store reconciliation engine that keeps
// the relational replica consistent with the document primary store.
//
// # Components
//
//   - Coordinator: orchestrates a full sync across all entity types in
//     dependency order (user profiles first, then builds, orders, and
//     inquiries concurrently), isolating per-record failures.
//   - Scheduler: timer-driven syncs with a bounded, updatable interval and
//     on-demand triggering.
//   - HealthReporter: per-entity record counts on both stores plus an inSync
//     verdict; divergence between reachable stores is not an error.
//   - RestoreInspector: read-only view of replica contents. Executing a
//     replica-to-primary restore is disabled by design.
//   - Archiver: optional JSON run reports uploaded to object storage.
//
// # Known limitation
//
// Natural-key collisions are resolved by writing the incoming record under a
// disambiguated key ("<naturalKey>-<id>"). Over repeated syncs with shifting
// identities these disambiguated records can accumulate without ever being
// reconciled back to a canonical entry; no cleanup policy exists upstream, so
// none is invented here. They show up as count divergence in health reports.
//
// # HTTP Endpoints
//
//   - POST /backup/full      : full sync now
//   - POST /backup/immediate : on-demand sync via the scheduler
//   - GET  /backup/health    : dual-store counts and sync status
//   - GET  /backup/timer     : scheduler status
//   - PUT  /backup/timer     : update interval (1-24 hours)
//   - GET  /backup/restore   : what a restore would contain
//   - POST /backup/restore   : always rejected (disabled by design)
package backup
