// Package dice evaluates dice-roll notation.
//
// Expressions are written in prefix form, where an operator applies to every
// value that follows it and optionally to one nested expression:
//
//	1d20          one twenty-sided die
//	+ 2d6 3       two six-sided dice plus three
//	- 1d8 1 + 2 3 one eight-sided die, minus one, minus the sum of two and three
//
// A value at the start of the notation may also be continued in infix form,
// so "2d6+3" and "1d6-1" read the way they are usually written.
//
// A minus sign directly followed by a digit always forms a negative literal,
// so "3-5" is the value 3 followed by the value -5.
//
// A single term rolls at most [MaxCount] dice. Totals and bounds that would
// overflow an int are reported as [ErrRange].
package dice
