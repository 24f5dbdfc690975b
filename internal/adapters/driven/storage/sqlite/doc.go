// Package sqlite implements the document index on an embedded SQLite
// database (modernc.org/sqlite, no CGO). Schema changes ship as
// embedded .up.sql migrations applied additively, so stores created by
// older builds remain usable without data loss.
package sqlite
