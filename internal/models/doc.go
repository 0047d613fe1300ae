// package models defines the data model for the DXCC need-list tracker.
//
// The central types are [QSO], a single logged contact with its derived QSL
// confirmation status, and [Collection], the ordered per-user sequence of
// contacts that import and reconciliation operate over.
package models
