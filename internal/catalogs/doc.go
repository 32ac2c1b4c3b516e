// Package catalogs implements the fixed set of catalog sources the
// pipeline can query: four VizieR catalogs (Abell, SDSS, 2MASX, NGC/IC),
// the NASA/IPAC Extragalactic Database and a user-supplied CSV file.
//
// Each source implements driven.CatalogSource and is selected through the
// Registry's explicit lookup table. Wide-area sources tile the sky into
// bounded cone searches to respect the services' row limits; the NED
// source additionally pre-filters tiles against the active footprint and
// advertises that through its SelfFilters capability.
package catalogs
