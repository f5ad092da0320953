/*
Package nrepl/main provides an interactive command line tool (N.REPL)
for range sets. Users define named sets from range specifications, then
add and delete values and query membership, size and canonical form.

    nrepl> def weekdays 1..5
    nrepl> add 7
    nrepl> in 6 7
    nrepl> show

Type 'help' for a list of commands.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'numrange.repl'
func tracer() tracing.Trace {
	return tracing.Select("numrange.repl")
}
