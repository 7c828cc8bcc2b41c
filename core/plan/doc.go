// Package plan implements the scheduling engine: normative resolution
// from a template project, predecessor-chain ordering of task groups,
// constraint-based resource matching, calendar-aware time advancement
// and conflict-free greedy slot allocation. The pass is strictly
// sequential, runs against an immutable snapshot and produces a full
// schedule or a single failure reason, never a partial one.
package plan
