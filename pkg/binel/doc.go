// Package binel implements the on-disk binary element tree: a self-describing,
// string-interned tree of named nodes carrying typed attributes, used as the
// wire format for level files. It provides Decode/Encode and a fuzzy-equal
// oracle for round-trip tests, but knows nothing about the meaning of any
// particular element or attribute name — that mapping lives in pkg/levelmap.
package binel
