// Package store binds the reconciliation engine to concrete persistence.
//
// MongoSource reads entity snapshots from the primary document store and is
// strictly read-only. SQLTarget wraps the GORM replica connection and exposes
// one reconcile.Accessor per entity type; all writes in this application flow
// through those accessors (plus the explicit Clear maintenance operation).
package store
