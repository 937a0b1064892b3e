package usecase

import "github.com/x-xyz/gameanalytics/domain"

// ledger keeps signed balances per address in first-seen order. Iteration order is the
// tie-break of every ranking built on top of it.
type ledger struct {
	width    int
	order    []domain.Address
	index    map[domain.Address]int
	balances [][]int64
}

func newLedger(width int) *ledger {
	return &ledger{
		width: width,
		index: make(map[domain.Address]int),
	}
}

func (l *ledger) touch(addr domain.Address) int {
	if i, ok := l.index[addr]; ok {
		return i
	}
	i := len(l.order)
	l.index[addr] = i
	l.order = append(l.order, addr)
	l.balances = append(l.balances, make([]int64, l.width))
	return i
}

// add books amount on slot; a negative slot only registers the address.
func (l *ledger) add(addr domain.Address, slot int, amount int64) {
	i := l.touch(addr)
	if slot < 0 {
		return
	}
	l.balances[i][slot] += amount
}

func (l *ledger) each(f func(addr domain.Address, balances []int64)) {
	for i, addr := range l.order {
		f(addr, l.balances[i])
	}
}

// addressSet is an insertion-ordered set of addresses.
type addressSet struct {
	seen  map[domain.Address]struct{}
	order []domain.Address
}

func newAddressSet() *addressSet {
	return &addressSet{seen: make(map[domain.Address]struct{})}
}

func (s *addressSet) add(addr domain.Address) {
	if _, ok := s.seen[addr]; ok {
		return
	}
	s.seen[addr] = struct{}{}
	s.order = append(s.order, addr)
}

func (s *addressSet) len() int {
	return len(s.order)
}
