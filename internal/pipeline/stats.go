package pipeline

// RunStats tracks aggregate counters across a batch run.
type RunStats struct {
	Total    int // Items in the work queue.
	Current  int // 1-based index of the item being processed.
	Uploaded int // Items that reached Done.
	Skipped  int // Items diverted to Skipped by a per-item failure.
}
