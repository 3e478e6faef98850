package patch

// Status is the outcome of one asset.
type Status string

const (
	// StatusPatched means at least one occurrence was found (and written,
	// unless dry-run).
	StatusPatched Status = "patched"
	// StatusNoMatch means the original payload does not occur in the container.
	StatusNoMatch Status = "no-match"
	// StatusOversize means the replacement is longer than the original.
	StatusOversize Status = "oversize"
	// StatusEmptyOriginal means the original payload has no bytes to match.
	StatusEmptyOriginal Status = "empty-original"
	// StatusUnpaired means the asset exists on only one side of the pairing.
	StatusUnpaired Status = "unpaired"
	// StatusFailed means a fatal I/O error stopped the asset mid-way.
	StatusFailed Status = "failed"
)

// Skipped reports whether the asset was skipped without any write attempt.
func (s Status) Skipped() bool {
	return s == StatusOversize || s == StatusEmptyOriginal || s == StatusUnpaired
}

// AssetReport describes what happened to one asset.
type AssetReport struct {
	Label          string  `json:"label"`
	Status         Status  `json:"status"`
	Offsets        []int64 `json:"offsets,omitempty"`
	OriginalLen    int     `json:"original_len,omitempty"`
	ReplacementLen int     `json:"replacement_len,omitempty"`
	Reason         string  `json:"reason,omitempty"`
}

// Matches returns the number of occurrences handled.
func (a AssetReport) Matches() int { return len(a.Offsets) }

// Report summarizes a run.
type Report struct {
	Assets       []AssetReport `json:"assets"`
	Patched      int           `json:"patched"`
	NoMatch      int           `json:"no_match"`
	Skipped      int           `json:"skipped"`
	Failed       int           `json:"failed"`
	Matches      int           `json:"matches"`
	BytesWritten int64         `json:"bytes_written"`
	// DistinctBytes counts container bytes changed at least once. It is
	// below BytesWritten when assets overwrite each other.
	DistinctBytes int64 `json:"distinct_bytes"`
	DryRun        bool  `json:"dry_run"`
}

// Asset returns the report for label, if any.
func (r *Report) Asset(label string) (AssetReport, bool) {
	for _, a := range r.Assets {
		if a.Label == label {
			return a, true
		}
	}
	return AssetReport{}, false
}

func (r *Report) add(a AssetReport) {
	r.Assets = append(r.Assets, a)
	r.Matches += a.Matches()
	switch {
	case a.Status == StatusPatched:
		r.Patched++
		if !r.DryRun {
			r.BytesWritten += int64(a.Matches()) * int64(a.OriginalLen)
		}
	case a.Status == StatusNoMatch:
		r.NoMatch++
	case a.Status == StatusFailed:
		r.Failed++
		if !r.DryRun {
			r.BytesWritten += int64(a.Matches()) * int64(a.OriginalLen)
		}
	case a.Status.Skipped():
		r.Skipped++
	}
}
