package rangeset

import (
	"fmt"
	"math"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// --- Intervals -------------------------------------------------------------

// Interval is an inclusive span of integers [From…To]. From <= To.
type Interval struct {
	From int64
	To   int64
}

// Contains is true if n is within the interval, including the bounds.
func (iv Interval) Contains(n int64) bool {
	return n >= iv.From && n <= iv.To
}

// Width returns To-From. It does not overflow for any valid interval.
func (iv Interval) Width() uint64 {
	return uint64(iv.To) - uint64(iv.From)
}

// Len returns the number of integers covered by the interval, i.e. Width()+1.
// For the interval spanning all of int64 the result saturates at math.MaxUint64.
func (iv Interval) Len() uint64 {
	w := iv.Width()
	if w == math.MaxUint64 {
		return w
	}
	return w + 1
}

// String returns the interval's ID, "from..to".
func (iv Interval) String() string {
	return fmt.Sprintf("%d..%d", iv.From, iv.To)
}

func intervalComparator(a, b interface{}) int {
	i1, i2 := a.(Interval), b.(Interval)
	if c := utils.Int64Comparator(i1.From, i2.From); c != 0 {
		return c
	}
	return utils.Int64Comparator(i1.To, i2.To)
}

// --- Stores ----------------------------------------------------------------

// store holds a range set's values, in two complementary stores:
// a small-set store of individual members and a large-interval store for spans
// too wide to be enumerated. Coverage of the two stores may overlap.
type store struct {
	members   *treeset.Set // of int64
	intervals *treemap.Map // Interval → Interval, keyed by bounds
}

func newStore() *store {
	return &store{
		members:   treeset.NewWith(utils.Int64Comparator),
		intervals: treemap.NewWith(intervalComparator),
	}
}

func (st *store) addNumber(n int64) {
	st.members.Add(n)
}

// delNumber removes n from the member store. Intervals covering n are not
// changed.
func (st *store) delNumber(n int64) {
	st.members.Remove(n)
	if st.inIntervals(n) {
		tracer().Infof("%d remains covered by a large interval", n)
	}
}

// addInterval stores iv. Adding an interval with identical bounds twice is a no-op.
func (st *store) addInterval(iv Interval) {
	st.intervals.Put(iv, iv)
}

// delInterval removes the interval with exactly the bounds of iv, if present.
func (st *store) delInterval(iv Interval) {
	if _, found := st.intervals.Get(iv); !found {
		tracer().Infof("no large interval %v stored, nothing to delete", iv)
		return
	}
	st.intervals.Remove(iv)
}

func (st *store) contains(n int64) bool {
	return st.members.Contains(n) || st.inIntervals(n)
}

func (st *store) inIntervals(n int64) bool {
	it := st.intervals.Iterator()
	for it.Next() {
		iv := it.Key().(Interval)
		if iv.From > n { // intervals are sorted by lower bound
			return false
		}
		if iv.Contains(n) {
			return true
		}
	}
	return false
}

// memberValues returns the member store's values in ascending order.
func (st *store) memberValues() []int64 {
	values := make([]int64, 0, st.members.Size())
	it := st.members.Iterator()
	for it.Next() {
		values = append(values, it.Value().(int64))
	}
	return values
}

// intervalValues returns the stored intervals, sorted by bounds.
func (st *store) intervalValues() []Interval {
	ivs := make([]Interval, 0, st.intervals.Size())
	for _, k := range st.intervals.Keys() {
		ivs = append(ivs, k.(Interval))
	}
	return ivs
}

// runs returns the union of both stores as a sorted list of disjoint,
// non-adjacent intervals.
func (st *store) runs() []Interval {
	ivs, members := st.intervalValues(), st.memberValues()
	var runs []Interval
	for len(ivs) > 0 || len(members) > 0 { // merge two sorted sequences
		var iv Interval
		if len(members) == 0 || len(ivs) > 0 && ivs[0].From <= members[0] {
			iv, ivs = ivs[0], ivs[1:]
		} else {
			iv, members = Interval{members[0], members[0]}, members[1:]
		}
		if len(runs) > 0 {
			last := &runs[len(runs)-1]
			if last.To == math.MaxInt64 || iv.From <= last.To+1 {
				if iv.To > last.To {
					last.To = iv.To
				}
				continue
			}
		}
		runs = append(runs, iv)
	}
	return runs
}
