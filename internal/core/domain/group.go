package domain

// GroupMode selects how a device's records collapse into one entry.
type GroupMode int

const (
	// LatestOnly keeps the record with the greatest created_at per key.
	LatestOnly GroupMode = iota
	// Aggregate folds every record of a key into duration-weighted averages.
	Aggregate
)

// GroupKey selects the identity used to group records.
type GroupKey int

const (
	ByDeviceUID GroupKey = iota
	ByDeviceName
)

// MissingPolicy controls how null temperature/power readings enter an
// aggregate.
type MissingPolicy int

const (
	// MissingExcluded drops nulls from numerator and denominator; an all-null
	// group stays null.
	MissingExcluded MissingPolicy = iota
	// MissingAsZero counts nulls as 0 with their full duration weight.
	MissingAsZero
)

// GroupOptions parameterizes the grouper.
type GroupOptions struct {
	Mode    GroupMode
	Key     GroupKey
	Missing MissingPolicy
}

func (k GroupKey) of(r BenchmarkRecord) string {
	if k == ByDeviceName {
		return r.DeviceName
	}
	return r.DeviceUID
}

// Group reduces records to one DeviceSummary per distinct non-empty key.
// Output follows the order in which keys first appear. Records with an empty
// key belong to an unknown device and are left out.
func Group(records []BenchmarkRecord, opts GroupOptions) []DeviceSummary {
	if opts.Mode == Aggregate {
		return groupAggregate(records, opts)
	}
	return groupLatest(records, opts.Key)
}

func groupLatest(records []BenchmarkRecord, key GroupKey) []DeviceSummary {
	index := make(map[string]int)
	var out []DeviceSummary

	for _, r := range records {
		k := key.of(r)
		if k == "" {
			continue
		}
		i, seen := index[k]
		if !seen {
			index[k] = len(out)
			out = append(out, DeviceSummary{Key: k, Runs: 1, Record: r})
			continue
		}
		out[i].Runs++
		// Strictly newer only: on equal timestamps the first record stays.
		if r.CreatedAt.After(out[i].Record.CreatedAt) {
			out[i].Record = r
		}
	}
	return out
}

type accumulator struct {
	first BenchmarkRecord
	runs  int

	hashSum, weightSum float64
	plainHashSum       float64
	maxHashrate        float64
	durationSum        float64

	temp, power weighted
}

type weighted struct {
	sum, weight float64
	plainSum    float64
	n           int
}

func (w *weighted) add(v *float64, duration float64, policy MissingPolicy) {
	var x float64
	switch {
	case v != nil:
		x = *v
	case policy == MissingAsZero:
		x = 0
	default:
		return
	}
	w.sum += x * duration
	w.weight += duration
	w.plainSum += x
	w.n++
}

// mean falls back to the unweighted mean when every run has zero duration.
func (w weighted) mean() *float64 {
	if w.n == 0 {
		return nil
	}
	var m float64
	if w.weight > 0 {
		m = w.sum / w.weight
	} else {
		m = w.plainSum / float64(w.n)
	}
	return &m
}

func groupAggregate(records []BenchmarkRecord, opts GroupOptions) []DeviceSummary {
	index := make(map[string]int)
	var keys []string
	var accs []*accumulator

	for _, r := range records {
		k := opts.Key.of(r)
		if k == "" {
			continue
		}
		i, seen := index[k]
		if !seen {
			i = len(accs)
			index[k] = i
			keys = append(keys, k)
			accs = append(accs, &accumulator{first: r, maxHashrate: r.MaxHashrate})
		}
		a := accs[i]
		a.runs++
		a.hashSum += r.AvgHashrate * r.DurationSeconds
		a.weightSum += r.DurationSeconds
		a.plainHashSum += r.AvgHashrate
		a.durationSum += r.DurationSeconds
		if r.MaxHashrate > a.maxHashrate {
			a.maxHashrate = r.MaxHashrate
		}
		a.temp.add(r.AvgTemp, r.DurationSeconds, opts.Missing)
		a.power.add(r.AvgPower, r.DurationSeconds, opts.Missing)
	}

	out := make([]DeviceSummary, len(accs))
	for i, a := range accs {
		rec := a.first
		if a.weightSum > 0 {
			rec.AvgHashrate = a.hashSum / a.weightSum
		} else {
			rec.AvgHashrate = a.plainHashSum / float64(a.runs)
		}
		rec.MaxHashrate = a.maxHashrate
		rec.AvgTemp = a.temp.mean()
		rec.AvgPower = a.power.mean()
		rec.DurationSeconds = a.durationSum / float64(a.runs)
		out[i] = DeviceSummary{Key: keys[i], Runs: a.runs, Record: rec}
	}
	return out
}
