package mapping

// Resolve returns the first active entry of the category whose source code
// exactly equals the given code. The comparison is case-sensitive with no
// normalization. An empty code never resolves: fixed-value entries are not
// reachable through this path.
func Resolve(snap *Snapshot, category Category, sourceCode string) (*Entry, bool) {
	if sourceCode == "" {
		return nil, false
	}
	entries := snap.Entries(category)
	for i := range entries {
		if entries[i].Matches(sourceCode) {
			return &entries[i], true
		}
	}
	return nil, false
}
