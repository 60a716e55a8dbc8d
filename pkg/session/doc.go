/*
Package session serializes turns per conversation.

A turn is a read-modify-write of one Session: the Manager holds a per-session mutex
(reference counted, so idle sessions cost nothing) and, when configured, a distributed
lock so replicas sharing a store never interleave turns of the same session.
*/
package session
