// Package resolver turns catalog records into user-facing sentences.
//
// Every function here is a pure function of its inputs and the read-only record store:
// no session state, no I/O, no errors. Failed lookups surface as explanatory text.
package resolver
