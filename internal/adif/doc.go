// package adif implements parsing of the Amateur Data Interchange Format,
// the tag-length-value text format used to exchange contact logs.
//
// Parsing is layered: [Scanner] produces raw field tokens in one pass,
// [ReadRecords] groups them into per-record field maps at <EOR> boundaries,
// and [Mapper] turns a raw record into a [models.QSO] candidate using an
// injected DXCC table. Individual bad fields or records never abort the
// whole file; only input with no recognizable tags at all does.
package adif
