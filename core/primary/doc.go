// Package primary manages the connection to the authoritative document store.
//
// The primary store is the MongoDB database the rest of the shop application
// reads and writes. The backup manager only ever observes it: every collection
// access issued through feature/backup/store is a read. Writes target the
// replica exclusively.
package primary
