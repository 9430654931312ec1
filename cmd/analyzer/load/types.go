package load

import (
	"strings"

	"github.com/pkg/errors"

	"git.amazon.com/pkg/tai-analyzer/ir"
)

var primitiveNames = map[string]ir.PrimitiveKind{
	"byte": ir.Byte, "short": ir.Short, "int": ir.Int, "char": ir.Char,
	"boolean": ir.Boolean, "long": ir.Long, "float": ir.Float, "double": ir.Double,
}

// resolveType parses a type name: a primitive keyword, a declared class
// name, or either suffixed with one or more "[]" for array types.
func resolveType(name string, classes map[string]*ir.Class) (ir.Type, error) {
	dims := 0
	for strings.HasSuffix(name, "[]") {
		name = strings.TrimSuffix(name, "[]")
		dims++
	}
	var base ir.Type
	if k, ok := primitiveNames[name]; ok {
		base = ir.PrimitiveType{Kind: k}
	} else if _, ok := classes[name]; ok {
		base = ir.ClassType{Name: name}
	} else {
		return nil, errors.Errorf("unknown type %q", name)
	}
	for i := 0; i < dims; i++ {
		base = ir.ArrayType{Elem: base}
	}
	return base, nil
}

var binOpNames = map[string]ir.BinOp{
	"+": ir.Add, "-": ir.Sub, "*": ir.Mul, "/": ir.Div, "%": ir.Rem,
	"==": ir.Eq, "!=": ir.Ne, "<": ir.Lt, ">": ir.Gt, "<=": ir.Le, ">=": ir.Ge,
	"<<": ir.Shl, ">>": ir.Shr, ">>>": ir.UShr, "&": ir.And, "|": ir.Or, "^": ir.Xor,
}

func resolveBinOp(name string) (ir.BinOp, error) {
	op, ok := binOpNames[name]
	if !ok {
		return 0, errors.Errorf("unknown binary operator %q", name)
	}
	return op, nil
}

var callKindNames = map[string]ir.CallKind{
	"static": ir.Static, "special": ir.Special, "virtual": ir.Virtual, "interface": ir.Interface,
}

func resolveCallKind(name string) (ir.CallKind, error) {
	k, ok := callKindNames[name]
	if !ok {
		return 0, errors.Errorf("unknown call kind %q", name)
	}
	return k, nil
}

// resolveMethodRef looks up class.method's subsignature among the
// class's own declared methods, matching by name only; if the class
// declares several methods with that name, which one is returned is not
// defined.
func resolveMethodRef(className, methodName string, classes map[string]*ir.Class) (ir.MethodRef, error) {
	c, ok := classes[className]
	if !ok {
		return ir.MethodRef{}, errors.Errorf("unknown class %q", className)
	}
	for _, m := range c.DeclaredMethods() {
		if m.Name == methodName {
			return m.Ref(), nil
		}
	}
	return ir.MethodRef{}, errors.Errorf("class %q has no method %q", className, methodName)
}
