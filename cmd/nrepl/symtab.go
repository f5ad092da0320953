package main

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/numrange/rangeset"
)

// --- Tags -------------------------------------------------------

// Tag is a named range set, stored in a symbol table.
type Tag struct {
	name string
	Set  *rangeset.RangeSet
}

// NewTag creates a new tag for a range set.
func NewTag(nm string, set *rangeset.RangeSet) *Tag {
	return &Tag{name: nm, Set: set}
}

// Name gets the tag's name.
func (s *Tag) Name() string {
	return s.name
}

// String is a debug Stringer for tags.
func (s *Tag) String() string {
	return fmt.Sprintf("<tag '%s' = %s>", s.name, s.Set)
}

// === Symbol Tables =========================================================

// SymbolTable is a symbol table to store tags (map-like semantics).
// Iteration is in order of tag names.
type SymbolTable struct {
	table *treemap.Map // string → *Tag
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{table: treemap.NewWithStringComparator()}
}

// ResolveTag checks for a tag in the symbol table.
// Returns a tag or nil.
func (t *SymbolTable) ResolveTag(tagname string) *Tag {
	if tag, found := t.table.Get(tagname); found {
		return tag.(*Tag)
	}
	return nil
}

// DefineTag creates a new tag to store into the symbol table.
// The tag's name may not be empty.
// Overwrites existing tag with this name, if any.
// Returns the new tag and the previously stored tag (or nil).
func (t *SymbolTable) DefineTag(tagname string, set *rangeset.RangeSet) (*Tag, *Tag) {
	if len(tagname) == 0 {
		return nil, nil
	}
	old := t.ResolveTag(tagname)
	tag := NewTag(tagname, set)
	t.table.Put(tagname, tag)
	return tag, old
}

// Size counts the tags in a symbol table.
func (t *SymbolTable) Size() int {
	return t.table.Size()
}

// Each iterates over each tag in the table, executing a mapper function.
func (t *SymbolTable) Each(mapper func(string, *Tag)) {
	it := t.table.Iterator()
	for it.Next() {
		mapper(it.Key().(string), it.Value().(*Tag))
	}
}
