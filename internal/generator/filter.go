package generator

import "fmt"

// Predicate returns the filter clause comparing a tracked entity
// attribute to an option code.
func Predicate(attributeID, code string) string {
	return fmt.Sprintf(`A{%s}=="%s"`, attributeID, code)
}

// Conjunction joins clauses with the expression evaluator's AND operator.
func Conjunction(first, second string) string {
	return first + " && " + second
}
