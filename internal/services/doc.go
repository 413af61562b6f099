// Package services defines the shared error taxonomy for the export pipeline.
//
// Sentinel markers plus the Wrap helper translate failures into consistent
// user-visible outcomes and history statuses, so the orchestrator, engine
// session, and CLI classify errors the same way.
package services
