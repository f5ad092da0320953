package rangeset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cnf/structhash"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// DefaultMaxStoreSize is the default threshold for span widths: spans wider than
// this are stored as intervals instead of being expanded into members.
const DefaultMaxStoreSize = 1000

// DefaultArrayLimit is the default maximum length of slices returned by Array
// (1 GiB of int64 values).
const DefaultArrayLimit = 1 << 27

// maxArrayLen is the largest slice of int64 the Go runtime is able to allocate:
// 2^48 bytes of address space on 64-bit platforms, half of the address space on
// 32-bit platforms.
var maxArrayLen uint64 = 1 << 45

func init() {
	if math.MaxInt == math.MaxInt32 {
		maxArrayLen = math.MaxInt32 / 8
	}
}

// RangeSet is a set of integers, created from a range specification.
// Create one with Parse or New.
type RangeSet struct {
	negated    bool   // presentational only
	threshold  int64  // max span width to expand into members
	arrayLimit uint64 // max length of Array() results
	store      *store
}

// Option configures a range set.
type Option func(rs *RangeSet)

// WithMaxStoreSize sets the threshold for span widths, see SetThreshold.
// Non-positive values are ignored.
func WithMaxStoreSize(n int64) Option {
	return func(rs *RangeSet) {
		if err := rs.SetThreshold(n); err != nil {
			tracer().Errorf("%s", err.Error())
		}
	}
}

// WithArrayLimit limits the length of slices returned by Array. Sets with more
// members than n will return ErrOverflow for Array. The default is
// DefaultArrayLimit. Limits beyond what the runtime is able to allocate are
// lowered to the maximum possible slice length.
func WithArrayLimit(n int) Option {
	return func(rs *RangeSet) {
		if n < 0 {
			return
		}
		rs.arrayLimit = uint64(n)
		if rs.arrayLimit > maxArrayLen {
			tracer().Infof("array limit %d lowered to %d", n, maxArrayLen)
			rs.arrayLimit = maxArrayLen
		}
	}
}

// New creates a range set from a range specification given as a list of input
// items. Items are read as if concatenated with separators in between.
// A negation marker is recognized on the first item only.
//
// If any of the items is malformed, New returns an error of type *SyntaxError.
func New(specs []string, opts ...Option) (*RangeSet, error) {
	rs := &RangeSet{
		threshold:  DefaultMaxStoreSize,
		arrayLimit: DefaultArrayLimit,
		store:      newStore(),
	}
	for _, opt := range opts {
		opt(rs)
	}
	negated, sections, err := parse(specs)
	if err != nil {
		return nil, err
	}
	rs.negated = negated
	rs.apply(opAdd, sections)
	return rs, nil
}

// Parse creates a range set from a single range specification string, e.g.
//
//    rs, err := Parse("!1..2,3..4,-10..-5")
//
func Parse(spec string, opts ...Option) (*RangeSet, error) {
	return New([]string{spec}, opts...)
}

// MustParse is like Parse, but panics if spec is malformed.
func MustParse(spec string, opts ...Option) *RangeSet {
	rs, err := Parse(spec, opts...)
	if err != nil {
		panic(err)
	}
	return rs
}

// --- Configuration ---------------------------------------------------------

// SetThreshold sets the maximum width (end - start) of spans to be expanded into
// individual members. Wider spans are stored as intervals. n has to be positive,
// otherwise an ErrConfig is returned and the threshold is left unchanged.
func (rs *RangeSet) SetThreshold(n int64) error {
	if n <= 0 {
		return errors.Wrapf(ErrConfig, "max store size has to be positive, is %d", n)
	}
	rs.threshold = n
	return nil
}

// SetMaxStoreSize is a variant of SetThreshold for textual input, e.g. from
// configuration files or command lines. It returns the new threshold.
// Non-numeric input results in an ErrConfig and leaves the threshold unchanged.
func (rs *RangeSet) SetMaxStoreSize(size string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(size), 10, 64)
	if err != nil {
		return rs.threshold, errors.Wrapf(ErrConfig, "max store size %q is not numeric", size)
	}
	if err = rs.SetThreshold(n); err != nil {
		return rs.threshold, err
	}
	return rs.threshold, nil
}

// MaxStoreSize returns the current threshold for span widths.
func (rs *RangeSet) MaxStoreSize() int64 {
	return rs.threshold
}

// --- Mutation --------------------------------------------------------------

type opKind int8

const (
	opAdd opKind = iota + 1
	opDel
)

func (k opKind) String() string {
	switch k {
	case opAdd:
		return "add"
	case opDel:
		return "del"
	}
	return fmt.Sprintf("op(%d)", int8(k))
}

// AddRange adds the values of a range specification to the set.
// Negation of a set is fixed at creation time, a negation marker on the first
// item is ignored.
//
// Specifications are validated completely before the set is changed. If any
// of the items is malformed, the set is left unchanged and an error of type
// *SyntaxError is returned.
func (rs *RangeSet) AddRange(specs ...string) error {
	return rs.mutate(opAdd, specs)
}

// DelRange removes the values of a range specification from the set.
// Please note that single values are removed from the member store only.
// Intervals are removed as a whole, and only if specified with their exact
// bounds; see package documentation.
func (rs *RangeSet) DelRange(specs ...string) error {
	return rs.mutate(opDel, specs)
}

// AddNumbers adds values to the set.
func (rs *RangeSet) AddNumbers(ns ...int64) {
	for _, n := range ns {
		rs.applyNumber(opAdd, n)
	}
}

// DelNumbers removes values from the member store.
func (rs *RangeSet) DelNumbers(ns ...int64) {
	for _, n := range ns {
		rs.applyNumber(opDel, n)
	}
}

func (rs *RangeSet) mutate(kind opKind, specs []string) error {
	negated, sections, err := parse(specs)
	if err != nil {
		return err
	}
	if negated {
		tracer().Infof("negation marker ignored, %s does not change negation", kind)
	}
	rs.apply(kind, sections)
	return nil
}

// apply routes every section either to the member store or to the interval
// store, depending on the section's width.
func (rs *RangeSet) apply(kind opKind, sections []section) {
	for _, sect := range sections {
		from, to := sect.from, sect.to
		if from > to {
			tracer().Infof("span at %v: %d is > %d, swapping bounds", sect.at, from, to)
			from, to = to, from
		}
		if from == to {
			if sect.isSpan {
				tracer().Infof("span at %v: %d..%d is pointless", sect.at, from, to)
			}
			rs.applyNumber(kind, from)
			continue
		}
		iv := Interval{From: from, To: to}
		if iv.Width() > uint64(rs.threshold) {
			rs.applyInterval(kind, iv)
			continue
		}
		for n := from; ; n++ {
			rs.applyNumber(kind, n)
			if n == to {
				break
			}
		}
	}
}

func (rs *RangeSet) applyNumber(kind opKind, n int64) {
	switch kind {
	case opAdd:
		rs.store.addNumber(n)
	case opDel:
		rs.store.delNumber(n)
	default:
		panic(fmt.Sprintf("neither 'add' nor 'del' passed to range set, but %s", kind))
	}
}

func (rs *RangeSet) applyInterval(kind opKind, iv Interval) {
	tracer().Debugf("%s large interval %v", kind, iv)
	switch kind {
	case opAdd:
		rs.store.addInterval(iv)
	case opDel:
		rs.store.delInterval(iv)
	default:
		panic(fmt.Sprintf("neither 'add' nor 'del' passed to range set, but %s", kind))
	}
}

// --- Queries ---------------------------------------------------------------

// IsNegated is true if the range specification the set has been created from
// started with a negation marker.
func (rs *RangeSet) IsNegated() bool {
	return rs.negated
}

// InRange is true if n is in the set.
func (rs *RangeSet) InRange(n int64) bool {
	return rs.store.contains(n)
}

// InRangeEach tests every value of ns and returns the results in input order.
func (rs *RangeSet) InRangeEach(ns []int64) []bool {
	r := make([]bool, len(ns))
	for i, n := range ns {
		r[i] = rs.store.contains(n)
	}
	return r
}

// InRangeAll is true if all of the values are in the set. Calling it without
// any values returns false.
func (rs *RangeSet) InRangeAll(ns ...int64) bool {
	if len(ns) == 0 {
		return false
	}
	for _, n := range ns {
		if !rs.store.contains(n) {
			return false
		}
	}
	return true
}

// Members returns the values of the member store, in ascending order.
// Values covered by intervals are not included.
func (rs *RangeSet) Members() []int64 {
	return rs.store.memberValues()
}

// Intervals returns the intervals of the interval store, sorted by bounds.
func (rs *RangeSet) Intervals() []Interval {
	return rs.store.intervalValues()
}

// Runs returns the set as a sorted list of disjoint intervals, with adjacent
// values of both stores merged.
func (rs *RangeSet) Runs() []Interval {
	return rs.store.runs()
}

// Size returns the number of distinct values in the set. Intervals are counted
// by their width, without expansion. For a set covering all of int64 the
// result saturates at math.MaxUint64.
func (rs *RangeSet) Size() uint64 {
	var size uint64
	for _, run := range rs.store.runs() {
		l := run.Len()
		if size > math.MaxUint64-l {
			return math.MaxUint64
		}
		size += l
	}
	return size
}

// Array returns all values of the set in ascending order, intervals expanded.
// If the result would be too large to hold in a slice, Array returns
// ErrOverflow and a nil slice.
func (rs *RangeSet) Array() ([]int64, error) {
	count := uint64(rs.store.members.Size())
	if count > rs.arrayLimit {
		return nil, errors.Wrapf(ErrOverflow, "%d members exceed array limit", count)
	}
	ivs := rs.store.intervalValues()
	for _, iv := range ivs {
		l := iv.Len()
		if l > rs.arrayLimit || count > rs.arrayLimit-l {
			tracer().Errorf("range too large to return as array: %v", iv)
			return nil, errors.Wrapf(ErrOverflow, "interval %v cannot be expanded", iv)
		}
		count += l
	}
	values := make([]int64, 0, count)
	values = append(values, rs.store.memberValues()...)
	for _, iv := range ivs {
		for n := iv.From; ; n++ {
			values = append(values, n)
			if n == iv.To {
				break
			}
		}
	}
	slices.Sort(values)
	return slices.Compact(values), nil
}

// String returns the set in canonical compact notation: runs of consecutive values
// are written as "from..to", other values are comma-separated, all in ascending
// order. Negated sets are prefixed by '!'.
//
//    MustParse("!5,1..3,4 10").String()  // => "!1..5,10"
//
func (rs *RangeSet) String() string {
	var b strings.Builder
	if rs.negated {
		b.WriteByte('!')
	}
	for i, run := range rs.store.runs() {
		if i > 0 {
			b.WriteByte(',')
		}
		if run.From == run.To {
			b.WriteString(strconv.FormatInt(run.From, 10))
		} else {
			b.WriteString(run.String())
		}
	}
	return b.String()
}

// Fingerprint returns a hash over the values of the set and its negation flag.
// Sets with equal values have equal fingerprints, no matter how values are
// distributed over the stores.
func (rs *RangeSet) Fingerprint() (string, error) {
	fp := struct {
		Negated bool
		Runs    []Interval
	}{
		Negated: rs.negated,
		Runs:    rs.store.runs(),
	}
	return structhash.Hash(fp, 1)
}
