// Package testutil provides deterministic fakes for exercising renderers:
// scripted sample streams, a manually advanced clock, a hook recorder that
// captures lifecycle callbacks in order, and value-comparable timelines.
package testutil
