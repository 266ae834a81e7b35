// Package report renders run results for people and spreadsheets: CSV
// reports for the duplicate, near-duplicate, and classification stages, an
// append-only migration log, and terminal summary tables.
package report
