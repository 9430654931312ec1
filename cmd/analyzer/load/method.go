// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package load

import (
	"github.com/pkg/errors"

	"git.amazon.com/pkg/tai-analyzer/ir"
	"git.amazon.com/pkg/tai-analyzer/ir/build"
)

// buildMethod declares md on c and, unless abstract, drives its Ops
// against a MethodBuilder in two passes: pass one creates every
// statement (so ops appearing earlier in the document can still be the
// target of a later branch-wiring op); pass two wires the branch/goto/
// resume ops, which only need completed Stmt values to run.
func buildMethod(bld *build.Builder, c *ir.Class, md MethodDef, classes map[string]*ir.Class) error {
	retType, err := paramType(md.ReturnType, classes)
	if err != nil {
		return err
	}
	paramTypes := make([]ir.Type, len(md.Params))
	for i, p := range md.Params {
		t, err := resolveType(p, classes)
		if err != nil {
			return errors.Wrapf(err, "param %d", i)
		}
		paramTypes[i] = t
	}
	mb := bld.Method(c, md.Name, md.Static, md.Abstract, retType, paramTypes...)
	if md.Abstract {
		return nil
	}

	vars := map[string]*ir.Var{}
	if mb.This() != nil {
		vars["this"] = mb.This()
	}
	for i := range md.Params {
		vars[paramName(i)] = mb.Param(i)
	}
	for _, vd := range md.Vars {
		t, err := resolveType(vd.Type, classes)
		if err != nil {
			return errors.Wrapf(err, "var %s", vd.Name)
		}
		vars[vd.Name] = mb.NewVar(vd.Name, t)
	}

	stmts := make([]ir.Stmt, len(md.Ops))
	for i, op := range md.Ops {
		s, err := createOp(mb, op, vars, classes, c.Name)
		if err != nil {
			return errors.Wrapf(err, "op %d (%s)", i, op.Op)
		}
		stmts[i] = s
	}
	for i, op := range md.Ops {
		if err := wireOp(mb, op, stmts); err != nil {
			return errors.Wrapf(err, "op %d (%s)", i, op.Op)
		}
	}
	mb.Finish()
	return nil
}

func paramName(i int) string {
	names := []string{"p0", "p1", "p2", "p3", "p4", "p5", "p6", "p7"}
	if i < len(names) {
		return names[i]
	}
	return "pN"
}

// paramType resolves a return type, defaulting to void-as-nil for an
// empty string (a method returning nothing).
func paramType(name string, classes map[string]*ir.Class) (ir.Type, error) {
	if name == "" {
		return nil, nil
	}
	return resolveType(name, classes)
}

func lookupVar(vars map[string]*ir.Var, name string) (*ir.Var, error) {
	if name == "" {
		return nil, nil
	}
	v, ok := vars[name]
	if !ok {
		return nil, errors.Errorf("unknown variable %q", name)
	}
	return v, nil
}

// createOp executes the statement-creating half of op and returns the
// resulting ir.Stmt; branch/goto/resume ops create nothing here.
func createOp(mb *build.MethodBuilder, op OpDef, vars map[string]*ir.Var, classes map[string]*ir.Class, className string) (ir.Stmt, error) {
	switch op.Op {
	case "new":
		lv, err := lookupVar(vars, op.LValue)
		if err != nil {
			return nil, err
		}
		t, err := resolveType(op.Type, classes)
		if err != nil {
			return nil, err
		}
		return mb.New(lv, t), nil
	case "copy":
		lv, err := lookupVar(vars, op.LValue)
		if err != nil {
			return nil, err
		}
		src, err := lookupVar(vars, op.Src)
		if err != nil {
			return nil, err
		}
		return mb.Copy(lv, src), nil
	case "loadfield":
		lv, err := lookupVar(vars, op.LValue)
		if err != nil {
			return nil, err
		}
		if op.Base == "" {
			f, err := lookupField(classes, className, op.Field)
			if err != nil {
				return nil, err
			}
			return mb.LoadStaticField(lv, f), nil
		}
		base, err := lookupVar(vars, op.Base)
		if err != nil {
			return nil, err
		}
		f, err := lookupField(classes, classNameOf(base), op.Field)
		if err != nil {
			return nil, err
		}
		return mb.LoadInstanceField(lv, base, f), nil
	case "storefield":
		rv, err := lookupVar(vars, op.RValue)
		if err != nil {
			return nil, err
		}
		if op.Base == "" {
			f, err := lookupField(classes, className, op.Field)
			if err != nil {
				return nil, err
			}
			return mb.StoreStaticField(f, rv), nil
		}
		base, err := lookupVar(vars, op.Base)
		if err != nil {
			return nil, err
		}
		f, err := lookupField(classes, classNameOf(base), op.Field)
		if err != nil {
			return nil, err
		}
		return mb.StoreInstanceField(base, f, rv), nil
	case "loadarray":
		lv, err := lookupVar(vars, op.LValue)
		if err != nil {
			return nil, err
		}
		base, err := lookupVar(vars, op.Base)
		if err != nil {
			return nil, err
		}
		idx, err := lookupVar(vars, op.Index)
		if err != nil {
			return nil, err
		}
		return mb.LoadArray(lv, base, idx), nil
	case "storearray":
		base, err := lookupVar(vars, op.Base)
		if err != nil {
			return nil, err
		}
		idx, err := lookupVar(vars, op.Index)
		if err != nil {
			return nil, err
		}
		rv, err := lookupVar(vars, op.RValue)
		if err != nil {
			return nil, err
		}
		return mb.StoreArray(base, idx, rv), nil
	case "assignconst":
		lv, err := lookupVar(vars, op.LValue)
		if err != nil {
			return nil, err
		}
		return mb.AssignConst(lv, op.Value), nil
	case "binary":
		lv, err := lookupVar(vars, op.LValue)
		if err != nil {
			return nil, err
		}
		o, err := resolveBinOp(op.BinOp)
		if err != nil {
			return nil, err
		}
		op1, err := lookupVar(vars, op.Op1)
		if err != nil {
			return nil, err
		}
		op2, err := lookupVar(vars, op.Op2)
		if err != nil {
			return nil, err
		}
		return mb.Binary(lv, o, op1, op2), nil
	case "cast":
		lv, err := lookupVar(vars, op.LValue)
		if err != nil {
			return nil, err
		}
		t, err := resolveType(op.Type, classes)
		if err != nil {
			return nil, err
		}
		operand, err := lookupVar(vars, op.Src)
		if err != nil {
			return nil, err
		}
		return mb.Cast(lv, t, operand), nil
	case "invoke":
		lv, err := lookupVar(vars, op.LValue)
		if err != nil {
			return nil, err
		}
		k, err := resolveCallKind(op.Kind)
		if err != nil {
			return nil, err
		}
		ref, err := resolveMethodRef(op.Class, op.Method, classes)
		if err != nil {
			return nil, err
		}
		recv, err := lookupVar(vars, op.Receiver)
		if err != nil {
			return nil, err
		}
		args := make([]*ir.Var, len(op.Args))
		for i, a := range op.Args {
			av, err := lookupVar(vars, a)
			if err != nil {
				return nil, err
			}
			args[i] = av
		}
		return mb.Invoke(k, lv, ref, recv, args...), nil
	case "if":
		op1, err := lookupVar(vars, op.Op1)
		if err != nil {
			return nil, err
		}
		op2, err := lookupVar(vars, op.Op2)
		if err != nil {
			return nil, err
		}
		o, err := resolveBinOp(op.BinOp)
		if err != nil {
			return nil, err
		}
		return mb.If(o, op1, op2), nil
	case "switch":
		v, err := lookupVar(vars, op.Src)
		if err != nil {
			return nil, err
		}
		return mb.Switch(v, op.CaseValues), nil
	case "return":
		v, err := lookupVar(vars, op.Src)
		if err != nil {
			return nil, err
		}
		return mb.Return(v), nil
	case "goto", "trueedge", "falseedge", "caseedge", "defaultedge", "resume":
		return nil, nil
	default:
		return nil, errors.Errorf("unknown op %q", op.Op)
	}
}

// wireOp executes the edge-wiring half of op, once every statement in
// the method has already been created.
func wireOp(mb *build.MethodBuilder, op OpDef, stmts []ir.Stmt) error {
	switch op.Op {
	case "goto":
		mb.Goto(stmts[op.From], stmts[op.To])
	case "trueedge":
		ifStmt, ok := stmts[op.From].(*ir.If)
		if !ok {
			return errors.Errorf("trueedge from op %d is not an if", op.From)
		}
		mb.TrueEdge(ifStmt, stmts[op.To])
	case "falseedge":
		ifStmt, ok := stmts[op.From].(*ir.If)
		if !ok {
			return errors.Errorf("falseedge from op %d is not an if", op.From)
		}
		mb.FalseEdge(ifStmt, stmts[op.To])
	case "caseedge":
		sw, ok := stmts[op.From].(*ir.Switch)
		if !ok {
			return errors.Errorf("caseedge from op %d is not a switch", op.From)
		}
		mb.CaseEdge(sw, op.Case, stmts[op.To])
	case "defaultedge":
		sw, ok := stmts[op.From].(*ir.Switch)
		if !ok {
			return errors.Errorf("defaultedge from op %d is not a switch", op.From)
		}
		mb.DefaultEdge(sw, stmts[op.To])
	case "resume":
		mb.Resume(stmts[op.From])
	}
	return nil
}

func classNameOf(v *ir.Var) string {
	if ct, ok := v.Type.(ir.ClassType); ok {
		return ct.Name
	}
	return ""
}

func lookupField(classes map[string]*ir.Class, className, fieldName string) (*ir.Field, error) {
	c, ok := classes[className]
	if !ok {
		return nil, errors.Errorf("unknown class %q", className)
	}
	for k := c; k != nil; k = k.Super {
		if f, ok := k.Fields[fieldName]; ok {
			return f, nil
		}
	}
	return nil, errors.Errorf("class %q has no field %q", className, fieldName)
}
