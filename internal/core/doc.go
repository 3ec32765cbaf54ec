// Package core provides the business logic for bulk lead import and export.
//
// This package is independent of any transport or storage implementation.
// Web handlers, CLI tools, and tests drive it through the [Pipeline] type,
// which only needs a [Store].
//
// # Pipeline
//
// An import call flows through four stages:
//
//  1. The [Adapter] for the requested [Format] decodes the payload into an
//     ordered sequence of [RawRow] values.
//  2. [Validate] checks each row independently and collects every violation.
//  3. [Normalize] turns each valid row into a canonical [Lead], resolving
//     column aliases, coercing numeric fields, and applying defaults.
//  4. [Store.InsertBatch] persists all normalized leads in one transaction;
//     either every lead in the batch is stored or none is.
//
// The resulting [ImportReport] accounts for every input row: rows that
// failed validation appear in the report with their original data and an
// ordered list of human-readable reasons, and never abort the batch.
//
// Export is the mirror image: leads are fetched newest-first for one owner
// and encoded through the same adapter, producing an [ExportPayload] with
// the correct MIME type and a timestamped filename.
//
// # Error classes
//
// Request-shape problems surface as the sentinel errors [ErrUserIDRequired],
// [ErrPayloadRequired], and [ErrUnknownFormat]. Undecodable payloads wrap
// into [DecodeError] and transaction failures into [StorageError], so
// callers can distinguish a bad request from a bad row from a failed write.
package core
