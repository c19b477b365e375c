// Package sqldata implements dialect-aware SQL value domains: Go types
// for database column types that are not covered by database/sql,
// together with their text encodings and per-dialect availability.
//
// Every type in this package implements driver.Valuer and sql.Scanner
// and can be used directly as a bind parameter or scan destination:
//
//	period := sqldata.NewTimeRange(from, to)
//	_, err := db.ExecContext(ctx, "INSERT INTO bookings (period) VALUES ($1)", period)
//
//	var period sqldata.TimeRange
//	err := db.QueryRowContext(ctx, "SELECT period FROM bookings WHERE id = $1", id).Scan(&period)
//
// # Value domains
//
//   - Range types (IntRange, BigIntRange, NumRange, TimeRange,
//     DateRange) with per-bound inclusivity, unbounded and infinite
//     endpoints, and the canonical empty range.
//   - Network addresses (Inet, CIDR, MacAddr) built on net/netip.
//   - Enum values restricted to a declared set (EnumType, Enum).
//   - JSON documents (JSON, RawJSON) and binary buffers (Blob).
//   - UUID helpers and a compact binary representation (BinaryUUID).
//   - Spatial values in well-known text form (Point, LineString,
//     Polygon, Geometry, Geography).
//   - PostgreSQL extras: HStore, array types, CIText, TSVector.
//
// # Availability
//
// Not every domain exists on every dialect. The dialect/sql/schema
// package renders column definitions and returns UnsupportedTypeError
// for domains a dialect cannot represent, and the compat package
// exposes the availability table programmatically.
//
// # External codecs
//
// TypeValueScanner and its implementations (ValueScannerFunc,
// TextValueScanner, BinaryValueScanner, MsgpackValueScanner) attach
// database codecs to existing Go types without modifying them.
package sqldata
