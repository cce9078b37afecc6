package runner

// Pending exposes the number of live per-key locks to tests.
func (r *Runner) Pending() int {
	return r.pending()
}
