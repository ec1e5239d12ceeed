package verify

import "fmt"

// Check is one scored assertion inside a layer.
type Check struct {
	Name   string
	Passed bool
	Detail string
}

// LayerReport is the outcome of a single verification layer. A mismatch is
// reported through Passed; Err is set only when the layer could not run to
// completion (unreadable file, malformed container).
type LayerReport struct {
	Layer  int
	Title  string
	Notes  []string
	Checks []Check
	Total  int
	Err    error
	Passed bool
}

// Score returns passed and total check counts. Total can exceed the number
// of recorded checks when a layer aborts early.
func (r LayerReport) Score() (passed, total int) {
	for _, c := range r.Checks {
		if c.Passed {
			passed++
		}
	}
	total = r.Total
	if total < len(r.Checks) {
		total = len(r.Checks)
	}
	return passed, total
}

func (r *LayerReport) note(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

func (r *LayerReport) check(name string, ok bool, format string, args ...any) bool {
	r.Checks = append(r.Checks, Check{Name: name, Passed: ok, Detail: fmt.Sprintf(format, args...)})
	return ok
}

func (r *LayerReport) fail(err error) LayerReport {
	r.Err = err
	r.Passed = false
	return *r
}

// finish marks the layer passed when every check passed and nothing failed.
func (r *LayerReport) finish() LayerReport {
	passed, total := r.Score()
	r.Passed = r.Err == nil && total > 0 && passed == total
	return *r
}

// Report aggregates the layers of one run.
type Report struct {
	Layers []LayerReport
}

// Passed is true only when every layer in the report passed.
func (r Report) Passed() bool {
	if len(r.Layers) == 0 {
		return false
	}
	for _, l := range r.Layers {
		if !l.Passed {
			return false
		}
	}
	return true
}
