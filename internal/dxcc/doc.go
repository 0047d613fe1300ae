// package dxcc holds the DXCC entity reference set and callsign/country
// resolution.
//
// The dataset ships embedded in the binary and is seeded into SQLite at
// setup time. At runtime one immutable [Table] is loaded at process start
// and injected into consumers; an admin reload swaps in a fresh Table built
// from the database.
package dxcc
