/*
Package rangeset implements sets of integers, described by range specifications.

A range specification is a list of sections, separated by commas or whitespace.
Each section is either a single value or an inclusive span, written with '..',
much like Perl's binary range operator in list context:

    1..2,3..4,-10..-5
    10..20 25..30
    1-10                  // shorthand for 1..10

A leading '!', 'N' or 'n' on the first input item marks the set as negated. Negation
is presentational only: it does not change membership tests, but the canonical
string form of a negated set is prefixed with '!'.

Storage

Sets keep two complementary stores. Spans not wider than a configurable threshold
(default 1000) are expanded into a set of individual members; wider spans are kept
as compact intervals. The stores may overlap, membership tests consult both.

    rs, err := rangeset.Parse("1..9999")  // stored as an interval
    rs.InRange(99)                        // => true
    rs.String()                           // => "1..9999"

Deleting a single value removes it from the member store only. A value covered by
a stored interval is not cut out of that interval: intervals are deleted as a whole,
by their exact bounds.

Sets are not safe for concurrent use. Clients sharing a set between goroutines have
to guard it with a lock of their own.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rangeset

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'numrange.rangeset'.
func tracer() tracing.Trace {
	return tracing.Select("numrange.rangeset")
}
