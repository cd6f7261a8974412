// Package middleware groups the Fiber middleware used by the HTTP surface.
//
//   - rayid: attaches a unique ray_id to every request for log correlation.
//   - auth: guards the API with a shared API key.
package middleware
