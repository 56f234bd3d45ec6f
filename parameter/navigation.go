package parameter

import "time"

// Navigation - Search
const (
	// NavUnitStepCost is the minimum cost of entering any cell; the
	// distance heuristic assumes every step costs at least this much
	NavUnitStepCost = 1

	// NavDefaultMaxSearchNodes caps node expansions per search call
	// when the context does not set its own ceiling. Checked once per
	// dequeue
	NavDefaultMaxSearchNodes = 10000

	// NavEnemyZonePenalty is added to the entering cost of cells inside
	// an avoided enemy zone when Context.AvoidEnemyZones is set
	NavEnemyZonePenalty = 4

	// NavHighGroundDiscount is subtracted from the entering cost of
	// high-ground cells when Context.PreferHighGround is set.
	// Effective cost is clamped to NavUnitStepCost afterward
	NavHighGroundDiscount = 1
)

// Navigation - Result cache
const (
	// NavCacheTTL bounds staleness of cached path results
	NavCacheTTL = 2 * time.Second

	// NavCacheMaxEntries triggers a wholesale clear when exceeded.
	// Full clear keeps eviction predictable; no LRU bookkeeping
	NavCacheMaxEntries = 256
)
