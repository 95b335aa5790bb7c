// Package section defines the packed, revision-gated byte layout of every
// header type a recording can contain: the file-level graph header, per-
// channel headers, the foreign-data header, per-channel data-type headers,
// compression headers, marker headers and their items, and the journal
// headers.
//
// Every type here is a thin wrapper around a schema.Reader bound to that
// header's field list for a specific revision. Parsing never walks the
// file itself — callers hand in exactly the bytes a header occupies and
// get back typed accessors; sequencing reads end to end is the job of the
// acq package's layout walker.
package section
