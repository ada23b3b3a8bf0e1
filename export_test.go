package resample

// Accessors for tests that verify the cached path schedule.

// DefaultPathCapacity mirrors the seed size of the path table.
const DefaultPathCapacity = defaultPathCapacity

// PathCount reports how many output positions have a cached schedule
// entry.
func (r *Resampler[E]) PathCount() int {
	return len(r.paths)
}

// PathEntry returns the input offset and partition index cached for
// output position i.
func (r *Resampler[E]) PathEntry(i int) (offset, partition int) {
	pt := r.paths[i]
	return pt.offset, pt.partition
}
