// Package replica manages the connection to the relational replica store.
//
// The replica is the schema-enforced MySQL database that the reconciliation
// engine projects the primary store into. This package only provides the GORM
// connection and schema migration; all reads and writes go through
// feature/backup/store.
//
// The replica is the only store this application ever writes to. The primary
// document store is authoritative and strictly read-only here.
package replica
