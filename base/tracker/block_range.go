package tracker

import (
	"fmt"
	"math/big"
)

// blockRange is an inclusive span of block numbers.
type blockRange struct {
	begin uint64
	end   uint64
}

func newBlockRange(begin, end uint64) *blockRange {
	return &blockRange{begin: begin, end: end}
}

func (r *blockRange) single() bool {
	return r.begin == r.end
}

// split halves the range, the first half takes the extra block of an odd length.
func (r *blockRange) split() (*blockRange, *blockRange) {
	mid := r.begin + (r.end-r.begin)/2
	return newBlockRange(r.begin, mid), newBlockRange(mid+1, r.end)
}

func (r *blockRange) fromBlock() *big.Int {
	return new(big.Int).SetUint64(r.begin)
}

func (r *blockRange) toBlock() *big.Int {
	return new(big.Int).SetUint64(r.end)
}

func (r *blockRange) String() string {
	return fmt.Sprintf("blockRange{%d-%d}", r.begin, r.end)
}
