package rewardsjobs

// SnapshotJob persists a leaderboard snapshot together with a consistency
// verdict. Scheduled periodically; the args carry no state because the
// worker always snapshots the current standings.
type SnapshotJob struct{}

// Kind returns the job type identifier for River.
func (SnapshotJob) Kind() string { return "leaderboard_snapshot" }
