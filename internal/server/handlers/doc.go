// Package handlers contains HTTP handlers for the sitebuilder API.
//
// Handlers decode requests, call the generator, build service and inventory, and encode the
// results as JSON. Failures are written through the foundation/errors HTTP adapter so every
// error response has the same shape.
package handlers
