// Package models defines the four reconciled entity types and their keys.
//
// Each entity carries bson tags for the primary document store and gorm tags
// for the relational replica, plus the identity / natural-key accessors the
// reconcile engine operates on. Optional fields synthesized for placeholder
// profiles have explicit defaulting rules in PlaceholderProfile rather than
// runtime field-presence checks.
package models
