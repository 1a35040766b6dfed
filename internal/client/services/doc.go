// Package services contains the application services of the terplink
// client. This is the synchronization layer: every read goes through the
// query cache (fresh hit, stale-while-revalidate, or fetch-on-miss), and
// every successful mutation applies its declared invalidation set. On a
// failed mutation the cache keeps its last known-good state and the
// classified gateway error is handed to the caller untouched; no layer
// here retries or renders user-facing text.
package services
