// Package dataset loads the college catalog from tabular sources.
//
// Every format is first read into header-keyed rows and then decoded into
// domain.Record values through one shared path, so validation and currency
// normalization behave the same whatever the source.
package dataset
