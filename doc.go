/*
Package numrange is a toolbox for sets of integers described by range
specifications like

    1..2,3..4,-10..-5
    !1..9999 42

Range specifications are lists of single values and inclusive spans, separated
by commas or whitespace. A leading '!' (or 'N', 'n') marks the whole set as
negated. Package structure is as follows:

■ rangeset: Package rangeset implements the range set engine: parsing of range
specifications, storage of values and large spans, membership tests and
canonical serialization.

■ scanner: Package scanner defines an interface for tokenizers, with an adapter
for lexmachine living in sub-package `lexmach`.

■ sparse: Package sparse implements a sparse integer table, used for state
transition tables.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package numrange
