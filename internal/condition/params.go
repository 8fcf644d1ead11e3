package condition

import "strconv"

// Params allocates session-unique parameter names param_0, param_1, ... The
// zero value is ready to use. Copying a Params snapshots the counter.
type Params struct {
	next int
}

// Next returns a fresh parameter name.
func (p *Params) Next() string {
	name := "param_" + strconv.Itoa(p.next)
	p.next++
	return name
}

// Len returns how many names have been allocated.
func (p *Params) Len() int { return p.next }
