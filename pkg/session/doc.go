/*
Package session orchestrates access to stored answer logs.

A Manager wraps a ports.LogStore so that saving, resuming and deleting a
session are serialized per session ID, within the process and, given a
ports.SessionLocker, across processes sharing the same store.
*/
package session
