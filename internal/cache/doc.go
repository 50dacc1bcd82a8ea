// Package cache provides a bounded, least-recently-used store of decoded
// thumbnail and preview buffers.
//
// Thumbnails and previews share one eviction budget but are keyed
// separately, so requesting both sizes for the same file occupies two
// entries. Decoding, resizing and eviction bookkeeping all happen inside
// a single critical section, so concurrent requests for the same key
// perform at most one decode.
package cache
