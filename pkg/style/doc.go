// Package style holds style-rule records and the class cascade that resolves
// them per node.
//
// A [Rules] value is one record: every field is optional and the zero value
// means "not declared". Records are merged with [Merge] or [Rules.Overlay];
// the last record that declares a field wins and unset fields never
// overwrite. There is no inheritance from parent nodes.
//
// A [Cascade] owns named classes. Each class holds an ordered list of
// records keyed by a style-source id and the set of nodes that reference it.
// Adding or replacing a record marks the class's nodes dirty;
// [Cascade.Recalculate] resolves every dirty node to the merge of all
// records of all its classes.
//
// The Parse functions and [Rules.Set] convert style-source text into typed
// values. Failures carry MALFORMED_STYLE_UNIT, or UNSUPPORTED for
// justify-content values other than start.
package style
