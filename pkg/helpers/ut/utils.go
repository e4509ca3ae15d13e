package ut

import "sync/atomic"

//Sequence hands out increasing uint64 IDs starting from 1. The zero value is ready to use.
type Sequence struct {
	last atomic.Uint64
}

func (s *Sequence) Next() uint64 {
	return s.last.Add(1)
}

//Last returns the most recently issued ID, or 0 if none was issued yet.
func (s *Sequence) Last() uint64 {
	return s.last.Load()
}
