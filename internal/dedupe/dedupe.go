package dedupe

// Package dedupe provides the shared singleflight group used to coalesce
// concurrent battle-state snapshot builds. Both participants poll on a
// short fixed interval, so near-simultaneous reads of the same room are
// common; a centralized singleflight.Group lets one build serve them all.

import "golang.org/x/sync/singleflight"

// SnapshotGroup deduplicates battle snapshot serialization keyed by room
// ID and session version (e.g. "room:42:v7"). Versioning the key keeps
// every mutation visible to the very next poll.
var SnapshotGroup singleflight.Group
