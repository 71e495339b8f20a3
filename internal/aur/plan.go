package aur

// DefaultMaxBatchSize is used when no per-call limit is configured.
const DefaultMaxBatchSize = 100

// Plan splits names into the fewest batches of at most maxBatchSize names,
// keeping input order. Duplicates are kept; Reconcile collapses them.
func Plan(names []string, maxBatchSize int) []QueryRequest {
	if maxBatchSize < 1 {
		maxBatchSize = 1
	}
	if len(names) == 0 {
		return nil
	}

	count := (len(names) + maxBatchSize - 1) / maxBatchSize
	batches := make([]QueryRequest, 0, count)
	for start := 0; start < len(names); start += maxBatchSize {
		end := min(start+maxBatchSize, len(names))
		chunk := make([]string, end-start)
		copy(chunk, names[start:end])
		batches = append(batches, QueryRequest{Index: len(batches), Names: chunk})
	}
	return batches
}
