// Package watch runs the docketd ingestion loops: a polled hot folder for
// dropped documents and a polled drop folder for raw .eml messages. Files
// are ingested only after they stop changing for a settle window, then
// routed through classification and verified transfer, with every step
// recorded in the audit trail.
package watch
