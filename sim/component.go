package sim

import (
	"strconv"
	"strings"
)

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// A Component is a named element of the simulated system that hooks can be
// attached to.
type Component interface {
	Named
	Hookable
}

// NameMustBeValid panics if the name does not follow the naming convention.
// A name is a dot-separated list of capitalized elements, optionally indexed
// with square brackets, for example "Node[1].Core[0].CtrlMsg".
func NameMustBeValid(name string) {
	for _, token := range strings.Split(name, ".") {
		tokenMustBeValid(name, token)
	}
}

func tokenMustBeValid(name, token string) {
	elem, _, hasIndex := strings.Cut(token, "[")

	if elem == "" {
		panic("Name " + name + " is not valid: element must not be empty")
	}

	if elem[0] < 'A' || elem[0] > 'Z' {
		panic("Name " + name +
			" is not valid: element must start with a capital letter")
	}

	if strings.ContainsAny(elem, "_\"'-]") {
		panic("Name " + name + " is not valid: invalid character")
	}

	if hasIndex && !strings.HasSuffix(token, "]") {
		panic("Name " + name + " is not valid: bracket must match")
	}
}

// BuildName builds a name from a parent name and an element name.
func BuildName(parentName, elementName string) string {
	if parentName == "" {
		return elementName
	}

	return parentName + "." + elementName
}

// BuildNameWithIndex builds a name from a parent name, an element name and an
// index.
func BuildNameWithIndex(parentName, elementName string, index int) string {
	return BuildName(parentName, elementName+"["+strconv.Itoa(index)+"]")
}
