// Package lang implements the forma expression language: a small,
// dynamically typed language for host applications that need to
// evaluate user-supplied expressions against values the host controls.
//
// An expression is parsed once into an immutable tree and may then be
// evaluated any number of times, concurrently, against different
// [Environment] values:
//
//	x, err := lang.ParseString(`count > 3 && name == "admin"`)
//	if err != nil { ... }
//	result, err := x.Evaluate(env)
//
// The grammar, loosest binding first:
//
//	expression      = disjunction { "&" disjunction } ;
//	disjunction     = conjunction { "||" conjunction } ;
//	conjunction     = negation { "&&" negation } ;
//	negation        = [ "!" ] comparison ;
//	comparison      = additive { compareOp additive } ;
//	compareOp       = ">" | ">=" | "<" | "<=" | "==" | "===" | "!=" | "!==" ;
//	additive        = multiplicative { ( "+" | "-" ) multiplicative } ;
//	multiplicative  = exponentiation { ( "*" | "/" | "%" ) exponentiation } ;
//	exponentiation  = parenthesis { "^" parenthesis } ;
//	parenthesis     = [ "-" | "!" ] "(" expression ")" | primary ;
//	primary         = [ "-" ] ( int | float | identifier ) | string
//	                | "true" | "false" | "null" | call ;
//	call            = identifier "(" [ expression { "," expression } ] ")" ;
//
// String literals use double quotes; the escape \" produces a double
// quote and \s produces a single quote. Identifiers resolve through the
// environment's static variables, then its live variable suppliers.
// Calls resolve through the environment's functions, then a [Registry]
// of built-ins.
//
// Values are null, bool, int, float, string, list, or function. The
// "==" family compares loosely (numbers across widths, numeric strings
// against numbers, strings case-insensitively) while "===" requires
// identical types and payloads. Arithmetic stays integral when it can:
// division and exponentiation widen to float only when the result is
// not exactly representable as an integer.
package lang
