// Package driven defines the interfaces the pipeline core depends on:
// catalog sources, the result sink and the run-history store. Adapters
// implement these; the core only consumes them.
package driven
