// Package load decodes a JSON program description into the in-memory IR
// that every analysis package in this repository consumes, driving
// ir/build.Builder the same way a real frontend (a bytecode loader, a
// source-language compiler pass) would. It is a thin, explicitly-not-a-
// frontend substitute — cmd/analyzer needs something to analyze without
// shipping a source parser or a bytecode loader, the same way building
// fixtures in-process avoids needing a real compiler toolchain for tests.
package load

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"git.amazon.com/pkg/tai-analyzer/ir"
	"git.amazon.com/pkg/tai-analyzer/ir/build"
)

// Program is the top-level JSON document: every class in the program
// being analyzed.
type Program struct {
	Classes []ClassDef `json:"classes"`
}

// ClassDef describes one class or interface.
type ClassDef struct {
	Name       string      `json:"name"`
	Interface  bool        `json:"interface,omitempty"`
	Super      string      `json:"super,omitempty"`
	Interfaces []string    `json:"interfaces,omitempty"`
	Abstract   bool        `json:"abstract,omitempty"`
	Fields     []FieldDef  `json:"fields,omitempty"`
	Methods    []MethodDef `json:"methods,omitempty"`
}

// FieldDef describes one declared field.
type FieldDef struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Static bool   `json:"static,omitempty"`
}

// MethodDef describes one method: its signature plus a flat op sequence
// for its body (Abstract marks a method with no body).
type MethodDef struct {
	Name       string    `json:"name"`
	Static     bool      `json:"static,omitempty"`
	Abstract   bool      `json:"abstract,omitempty"`
	ReturnType string    `json:"returnType,omitempty"`
	Params     []string  `json:"params,omitempty"`
	Vars       []VarDef  `json:"vars,omitempty"`
	Ops        []OpDef   `json:"ops,omitempty"`
}

// VarDef declares an additional local variable beyond "this" and the
// formal parameters, available to Ops by name.
type VarDef struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// OpDef is one tagged-union build operation; which fields are meaningful
// depends on Op. Targets for branch-wiring ops (trueedge/falseedge/
// caseedge/defaultedge/goto) are given as the zero-based index of the
// Ops entry that created the target statement.
type OpDef struct {
	Op string `json:"op"`

	LValue   string  `json:"lvalue,omitempty"`
	Src      string  `json:"src,omitempty"`
	Base     string  `json:"base,omitempty"`
	Index    string  `json:"index,omitempty"` // array index var, not to be confused with op position
	RValue   string  `json:"rvalue,omitempty"`
	Field    string  `json:"field,omitempty"`
	Type     string  `json:"type,omitempty"`
	Value    int32   `json:"value,omitempty"`
	BinOp    string  `json:"binop,omitempty"`
	Op1      string  `json:"op1,omitempty"`
	Op2      string  `json:"op2,omitempty"`
	Class    string  `json:"class,omitempty"`
	Method   string  `json:"method,omitempty"`
	ParamTypes []string `json:"paramTypes,omitempty"`
	Kind     string  `json:"kind,omitempty"` // call kind: static|special|virtual|interface
	Receiver string  `json:"receiver,omitempty"`
	Args     []string `json:"args,omitempty"`
	CaseValues []int32 `json:"caseValues,omitempty"`

	From int `json:"from,omitempty"` // op index of the branch statement
	To   int `json:"to,omitempty"`   // op index of the target statement
	Case int32 `json:"case,omitempty"`
}

// Load reads and builds the program described by the JSON file at path,
// returning every declared class plus a name-indexed lookup.
func Load(path string) ([]*ir.Class, map[string]*ir.Class, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading program file")
	}
	var doc Program
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, nil, errors.Wrap(err, "parsing program JSON")
	}
	return Build(&doc)
}

// Build drives ir/build.Builder from an already-parsed Program.
func Build(doc *Program) ([]*ir.Class, map[string]*ir.Class, error) {
	bld := build.New()
	classes := make(map[string]*ir.Class, len(doc.Classes))

	// Pass 1: declare every class (so Super/Interfaces/method-ref lookups
	// can forward-reference a class declared later in the document).
	for _, cd := range doc.Classes {
		kind := ir.KindClass
		if cd.Interface {
			kind = ir.KindInterface
		}
		c := ir.NewClass(cd.Name, kind)
		c.Abstract = cd.Abstract
		classes[cd.Name] = c
	}
	for _, cd := range doc.Classes {
		c := classes[cd.Name]
		if cd.Super != "" {
			super, ok := classes[cd.Super]
			if !ok {
				return nil, nil, errors.Errorf("class %s: unknown super %s", cd.Name, cd.Super)
			}
			c.Super = super
		}
		for _, iname := range cd.Interfaces {
			iface, ok := classes[iname]
			if !ok {
				return nil, nil, errors.Errorf("class %s: unknown interface %s", cd.Name, iname)
			}
			c.Interfaces = append(c.Interfaces, iface)
		}
	}

	// Pass 2: fields (must exist before any method body references them).
	for _, cd := range doc.Classes {
		c := classes[cd.Name]
		for _, fd := range cd.Fields {
			t, err := resolveType(fd.Type, classes)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "class %s field %s", cd.Name, fd.Name)
			}
			bld.Field(c, fd.Name, t, fd.Static)
		}
	}

	// Pass 3: methods, including bodies.
	for _, cd := range doc.Classes {
		c := classes[cd.Name]
		for _, md := range cd.Methods {
			if err := buildMethod(bld, c, md, classes); err != nil {
				return nil, nil, errors.Wrapf(err, "class %s method %s", cd.Name, md.Name)
			}
		}
	}

	out := make([]*ir.Class, 0, len(classes))
	for _, cd := range doc.Classes {
		out = append(out, classes[cd.Name])
	}
	return out, classes, nil
}
