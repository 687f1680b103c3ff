// Package utils provides shared low-level helpers used throughout the recall
// internals: an HTTP round-trip helper that reports to the span carried by the
// context, multipart body encoding for uploads, and string helpers for log
// output.
//
// Key entry points: [DoRequest] for a single HTTP exchange, [MultipartBody]
// for building upload bodies, and [TruncateString] for bounded log previews.
package utils
