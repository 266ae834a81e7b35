// Package classify maps file records onto destinations inside the governed
// taxonomy using an ordered, weighted rule set.
//
// Rules are tagged variants over {filename, extension, content, metadata,
// email}; every rule is evaluated and the highest-confidence match wins, with
// rule order breaking exact ties. Targets are typed templates whose
// {client}/{matter} placeholders are resolved from identifiers detected in
// the filename and extracted text; unresolved placeholders collapse to fixed
// sentinels so classification never blocks. Files no rule claims fall back to
// the unsorted inbox at confidence zero.
//
// The rule set is loaded once per run from YAML and treated as immutable;
// a malformed rule set is a fatal configuration error.
package classify
