// Package domain contains the core types of the cross-match pipeline:
// survey footprints, HEALPix pixel masks, catalog rows and per-combination
// match results. It has no dependencies on adapters or transports.
package domain
