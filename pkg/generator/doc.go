// Package generator fills a rectangular map with adjacent, non-overlapping
// rooms until a target density is reached.
//
// # State machine
//
//	Seeding ──► Growing ──► Done
//
// Seeding places one random room anywhere it fits and pushes it onto the
// frontier. Growing repeatedly picks a random frontier room and tries up to
// [Options.Retries] freshly sampled shapes next to it. The first shape that
// fits is committed, linked to its neighbour in the room graph and pushed onto
// the frontier. A frontier room whose retries are exhausted is retired
// permanently. Growing stops once the map density reaches the target or the
// frontier is empty.
//
// Every growing step either commits a room or retires one, and rooms are
// never re-added, so generation always terminates.
//
// # Determinism
//
// All random draws come from one PCG source seeded from [Options.Seed].
// Candidate enumeration is deterministic, including the parallel variant, so
// a seed always reproduces the same dungeon.
package generator
