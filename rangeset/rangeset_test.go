package rangeset

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/pkg/errors"
)

func TestNegatedRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.rangeset")
	defer teardown()
	//
	rs, err := Parse("!1..2,3..4,-10..-5")
	if err != nil {
		t.Fatal(err)
	}
	if !rs.IsNegated() {
		t.Errorf("expected range to be negated")
	}
	for _, n := range []int64{4, 1, -5} {
		if !rs.InRange(n) {
			t.Errorf("expected %d to be in range", n)
		}
	}
	if rs.InRange(0) {
		t.Errorf("expected 0 not to be in range")
	}
	if s := rs.String(); s != "!-10..-5,1..4" {
		t.Errorf("expected canonical string \"!-10..-5,1..4\", got %q", s)
	}
}

func TestMultipleItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.rangeset")
	defer teardown()
	//
	rs, err := New([]string{"10..20", "25..30"})
	if err != nil {
		t.Fatal(err)
	}
	if rs.Size() != 17 {
		t.Errorf("expected size of 17, is %d", rs.Size())
	}
	if !rs.InRange(10) {
		t.Errorf("expected 10 to be in range")
	}
	if s := rs.String(); s != "10..20,25..30" {
		t.Errorf("expected \"10..20,25..30\", got %q", s)
	}
	if rs.IsNegated() {
		t.Errorf("expected range not to be negated")
	}
}

func TestLargeRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.rangeset")
	defer teardown()
	//
	rs := MustParse("1..9999")
	if len(rs.Members()) != 0 || len(rs.Intervals()) != 1 {
		t.Errorf("expected 1..9999 to be stored as an interval, have members=%d, intervals=%v",
			len(rs.Members()), rs.Intervals())
	}
	if !rs.InRange(99) {
		t.Errorf("expected 99 to be in range")
	}
	arr, err := rs.Array()
	if err != nil {
		t.Fatal(err)
	}
	if len(arr) != 9999 || arr[0] != 1 || arr[9998] != 9999 {
		t.Errorf("expected array [1 … 9999], has length %d", len(arr))
	}
	if rs.Size() != uint64(len(arr)) {
		t.Errorf("expected size to equal array length %d, is %d", len(arr), rs.Size())
	}
	if s := rs.String(); s != "1..9999" {
		t.Errorf("expected \"1..9999\", got %q", s)
	}
}

func TestSetMaxStoreSize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.rangeset")
	defer teardown()
	//
	rs := MustParse("")
	if _, err := rs.SetMaxStoreSize("abc"); !errors.Is(err, ErrConfig) {
		t.Errorf("expected config error for non-numeric size, got %v", err)
	}
	if rs.MaxStoreSize() != DefaultMaxStoreSize {
		t.Errorf("expected max store size to be unchanged, is %d", rs.MaxStoreSize())
	}
	if err := rs.AddRange("1..1001"); err != nil {
		t.Fatal(err)
	}
	if len(rs.Members()) != 1001 || len(rs.Intervals()) != 0 {
		t.Errorf("expected span of width 1000 to be expanded")
	}
	rs.AddRange("2000..3001")
	if len(rs.Intervals()) != 1 {
		t.Errorf("expected span of width 1001 to be stored as interval")
	}
	if n, err := rs.SetMaxStoreSize(" 50 "); err != nil || n != 50 {
		t.Errorf("expected max store size to be set to 50, is %d (%v)", n, err)
	}
	rs.AddRange("5000..5100")
	if len(rs.Intervals()) != 2 {
		t.Errorf("expected span of width 100 to be stored as interval, have %v", rs.Intervals())
	}
	if _, err := rs.SetMaxStoreSize("-3"); !errors.Is(err, ErrConfig) {
		t.Errorf("expected config error for negative size, got %v", err)
	}
	if rs.MaxStoreSize() != 50 {
		t.Errorf("expected max store size to stay 50, is %d", rs.MaxStoreSize())
	}
}

func TestWithMaxStoreSize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.rangeset")
	defer teardown()
	//
	rs := MustParse("1..20", WithMaxStoreSize(10))
	if len(rs.Intervals()) != 1 {
		t.Errorf("expected 1..20 to be stored as interval with threshold 10")
	}
	rs = MustParse("1..20", WithMaxStoreSize(0))
	if rs.MaxStoreSize() != DefaultMaxStoreSize || len(rs.Members()) != 20 {
		t.Errorf("expected invalid option to be ignored")
	}
}

func TestAddDelRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.rangeset")
	defer teardown()
	//
	rs := MustParse("1..10")
	if err := rs.AddRange("20", "30..32"); err != nil {
		t.Fatal(err)
	}
	for _, n := range []int64{1, 10, 20, 31} {
		if !rs.InRange(n) {
			t.Errorf("expected %d to be in range after adding", n)
		}
	}
	if err := rs.DelRange("3..5,20"); err != nil {
		t.Fatal(err)
	}
	for _, n := range []int64{3, 4, 5, 20} {
		if rs.InRange(n) {
			t.Errorf("expected %d not to be in range after deletion", n)
		}
	}
	if s := rs.String(); s != "1..2,6..10,30..32" {
		t.Errorf("expected \"1..2,6..10,30..32\", got %q", s)
	}
	rs.AddNumbers(4, 3)
	rs.DelNumbers(31)
	if s := rs.String(); s != "1..4,6..10,30,32" {
		t.Errorf("expected \"1..4,6..10,30,32\", got %q", s)
	}
}

func TestDeleteFromInterval(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.rangeset")
	defer teardown()
	//
	rs := MustParse("1..9999")
	rs.DelRange("99")
	if !rs.InRange(99) {
		t.Errorf("expected 99 to remain covered by interval")
	}
	rs.DelRange("9999..1") // swapped bounds address the same interval
	if rs.InRange(99) || rs.Size() != 0 {
		t.Errorf("expected interval to be deleted, set is %q", rs.String())
	}
}

func TestAtomicMutation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.rangeset")
	defer teardown()
	//
	rs := MustParse("1..3")
	err := rs.AddRange("5..6", "7,")
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected syntax error, got %v", err)
	}
	if rs.InRange(5) || rs.String() != "1..3" {
		t.Errorf("expected set to be unchanged after syntax error, is %q", rs.String())
	}
}

func TestNegationFirstItemOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.rangeset")
	defer teardown()
	//
	if _, err := New([]string{"1..3", "!5"}); !errors.Is(err, ErrSyntax) {
		t.Errorf("expected negation marker on second item to be a syntax error, got %v", err)
	}
	for _, spec := range []string{"N1..3", "n1..3", "!"} {
		if rs := MustParse(spec); !rs.IsNegated() {
			t.Errorf("expected %q to be negated", spec)
		}
	}
	rs := MustParse("1..3")
	rs.AddRange("!7")
	if rs.IsNegated() || !rs.InRange(7) {
		t.Errorf("expected AddRange to add 7 without negating the set")
	}
	rs = MustParse("!1..3")
	rs.AddRange("7")
	if !rs.IsNegated() {
		t.Errorf("expected set to stay negated")
	}
}

func TestInRangeShapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.rangeset")
	defer teardown()
	//
	rs := MustParse("1..4,100..5000")
	r := rs.InRangeEach([]int64{1, 0, 4000, 5001})
	expected := []bool{true, false, true, false}
	for i := range expected {
		if r[i] != expected[i] {
			t.Errorf("expected result #%d to be %v, is %v", i, expected[i], r[i])
		}
	}
	if !rs.InRangeAll(1, 2, 3, 4, 100) {
		t.Errorf("expected all of 1,2,3,4,100 to be in range")
	}
	if rs.InRangeAll(1, 0) {
		t.Errorf("expected InRangeAll(1,0) to be false")
	}
	if rs.InRangeAll() {
		t.Errorf("expected InRangeAll() without values to be false")
	}
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.rangeset")
	defer teardown()
	//
	specs := []string{
		"!1..2,3..4,-10..-5",
		"10..20 25..30",
		"1..2000,2001,7",
		"-5-3",
		"0",
		"",
	}
	for _, spec := range specs {
		rs := MustParse(spec)
		rs2, err := Parse(rs.String())
		if err != nil {
			t.Errorf("cannot re-parse %q: %v", rs.String(), err)
			continue
		}
		for n := int64(-20); n <= 2100; n++ {
			if rs.InRange(n) != rs2.InRange(n) {
				t.Errorf("%q and %q differ for %d", spec, rs.String(), n)
				break
			}
		}
		fp1, _ := rs.Fingerprint()
		fp2, _ := rs2.Fingerprint()
		if fp1 != fp2 {
			t.Errorf("expected fingerprints of %q and %q to be equal", spec, rs.String())
		}
	}
}

func TestFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.rangeset")
	defer teardown()
	//
	a := MustParse("1..2000")                          // interval
	b := MustParse("1..1000,1001..2000")               // members only
	c := MustParse("!1..2000")                         // negated
	d := MustParse("1..2000", WithMaxStoreSize(10000)) // members only
	fpa, err := a.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	fpb, _ := b.Fingerprint()
	fpc, _ := c.Fingerprint()
	fpd, _ := d.Fingerprint()
	if fpa != fpb || fpa != fpd {
		t.Errorf("expected equal sets to have equal fingerprints")
	}
	if fpa == fpc {
		t.Errorf("expected negation to change fingerprint")
	}
}

func TestSizeWithOverlap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.rangeset")
	defer teardown()
	//
	rs := MustParse("1..5000,4999..5002,0")
	arr, err := rs.Array()
	if err != nil {
		t.Fatal(err)
	}
	if rs.Size() != uint64(len(arr)) || rs.Size() != 5003 {
		t.Errorf("expected size 5003 to equal array length, is %d / %d", rs.Size(), len(arr))
	}
	for i := 1; i < len(arr); i++ {
		if arr[i] != arr[i-1]+1 {
			t.Fatalf("expected array to be sorted and deduplicated, found %d after %d", arr[i], arr[i-1])
		}
	}
	if s := rs.String(); s != "0..5002" {
		t.Errorf("expected \"0..5002\", got %q", s)
	}
}

func TestOverflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.rangeset")
	defer teardown()
	//
	rs := MustParse("-9223372036854775808..9223372036854775807")
	if !rs.InRange(0) {
		t.Errorf("expected 0 to be in range")
	}
	if _, err := rs.Array(); !errors.Is(err, ErrOverflow) {
		t.Errorf("expected overflow error for array of all int64, got %v", err)
	}
	if rs.Size() != ^uint64(0) {
		t.Errorf("expected size to saturate, is %d", rs.Size())
	}
	if s := rs.String(); s != "-9223372036854775808..9223372036854775807" {
		t.Errorf("unexpected string %q", s)
	}
	rs = MustParse("1..9999", WithArrayLimit(100))
	if arr, err := rs.Array(); !errors.Is(err, ErrOverflow) || arr != nil {
		t.Errorf("expected array limit to be enforced, got %v", err)
	}
}

func TestArrayBeyondAllocation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.rangeset")
	defer teardown()
	//
	rs := MustParse("0..1000000000000000")
	var arr []int64
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("expected Array to return an error, but it panicked: %v", r)
			}
		}()
		arr, err = rs.Array()
	}()
	if !errors.Is(err, ErrOverflow) || arr != nil {
		t.Errorf("expected overflow error for huge interval, got %v", err)
	}
	rs = MustParse("0..1000000000000000", WithArrayLimit(math.MaxInt))
	if rs.arrayLimit > maxArrayLen {
		t.Errorf("expected array limit to be lowered to %d, is %d", maxArrayLen, rs.arrayLimit)
	}
	if rs.arrayLimit == DefaultArrayLimit {
		t.Errorf("expected array limit to be raised beyond the default")
	}
}

func TestDegenerateSpan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.rangeset")
	defer teardown()
	//
	rs := MustParse("3..3", WithMaxStoreSize(1))
	if m := rs.Members(); len(m) != 1 || m[0] != 3 {
		t.Errorf("expected single member 3, have %v", m)
	}
	if ivs := rs.Intervals(); len(ivs) != 0 {
		t.Errorf("expected no intervals, have %v", ivs)
	}
	if rs.Size() != 1 || rs.String() != "3" {
		t.Errorf("expected set \"3\" of size 1, is %q of size %d", rs.String(), rs.Size())
	}
}

func TestReversedLargeSpan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "numrange.rangeset")
	defer teardown()
	//
	rs := MustParse("9999..1")
	ivs := rs.Intervals()
	if len(ivs) != 1 || ivs[0] != (Interval{From: 1, To: 9999}) {
		t.Fatalf("expected swapped interval 1..9999, have %v", ivs)
	}
	if len(rs.Members()) != 0 {
		t.Errorf("expected no members, have %d", len(rs.Members()))
	}
	if rs.String() != "1..9999" || rs.Size() != 9999 {
		t.Errorf("expected 1..9999 of size 9999, is %q of size %d", rs.String(), rs.Size())
	}
	rs = MustParse("5..1")
	if m := rs.Members(); len(m) != 5 || m[0] != 1 || m[4] != 5 {
		t.Errorf("expected small reversed span to be expanded to 1..5, have %v", m)
	}
}

func TestUnknownOperation(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected unknown operation to panic")
		}
	}()
	rs := MustParse("")
	rs.apply(opKind(0), []section{{from: 1, to: 1}})
}
