// Package dataset loads the Anscombe's Quartet CSV file.
//
// The file has a fixed six-column schema:
//
//	x123, y1, y2, y3, x4, y4
//
// x123 is the shared x column of groups I-III; x4 belongs to group IV.
// Load(path) reads and decodes the file once; Dataset.Groups() slices the
// table into the four (x,y) groups named I, II, III and IV.
//
// Failures are reported as ErrNotFound (the file is absent) or ErrMalformed
// (empty file, missing column, short row, non-numeric cell, too few rows).
// Callers distinguish them with errors.Is.
package dataset
