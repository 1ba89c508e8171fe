package toolpath

import "sync"

// SynthesizeEach runs Synthesize for every path concurrently. results[i]
// and errs[i] belong to paths[i]; exactly one of them is meaningful.
func SynthesizeEach(paths []Path, opts Options) ([]Result, []error) {
	results := make([]Result, len(paths))
	errs := make([]error, len(paths))
	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = Synthesize(p, opts)
		}()
	}
	wg.Wait()
	return results, errs
}

// SynthesizeAll runs Synthesize for every path concurrently and returns the
// computed paths keyed by path ID. Paths without a cut type are skipped;
// paths that fail are logged and skipped.
func SynthesizeAll(paths []Path, opts Options) map[string][]ComputedPath {
	var todo []Path
	for _, p := range paths {
		if p.CutType != "" {
			todo = append(todo, p)
		}
	}
	results, errs := SynthesizeEach(todo, opts)

	out := make(map[string][]ComputedPath, len(todo))
	for i, p := range todo {
		if errs[i] != nil {
			Logger().Warn("skipping path", "path", p.ID, "err", errs[i])
			continue
		}
		out[p.ID] = results[i].Paths
	}
	return out
}
