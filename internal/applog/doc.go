// Package applog is the kernel's ambient logger: level-gated, field-tagged,
// io.Writer-backed, adapted from the teacher's internal/app/logging.go.
// The teacher never reaches for zerolog or zap despite both being
// available elsewhere in the retrieval pack, so this module doesn't
// either; this is the teacher's own ambient-logging convention, not a
// last-resort stdlib fallback.
package applog
