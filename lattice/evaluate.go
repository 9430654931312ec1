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

package lattice

import "git.amazon.com/pkg/tai-analyzer/ir"

// Compute applies op to two known-constant int32 operands using 32-bit
// two's-complement arithmetic; >>> is Go's logical shift on an unsigned
// view of the operand — logical (unsigned) right shift on 32 bits.
func Compute(op ir.BinOp, v1, v2 int32) int32 {
	switch op {
	case ir.Add:
		return v1 + v2
	case ir.Sub:
		return v1 - v2
	case ir.Mul:
		return v1 * v2
	case ir.Div:
		return v1 / v2
	case ir.Rem:
		return v1 % v2
	case ir.Eq:
		return b2i(v1 == v2)
	case ir.Ne:
		return b2i(v1 != v2)
	case ir.Lt:
		return b2i(v1 < v2)
	case ir.Gt:
		return b2i(v1 > v2)
	case ir.Le:
		return b2i(v1 <= v2)
	case ir.Ge:
		return b2i(v1 >= v2)
	case ir.Shl:
		return v1 << (uint32(v2) & 31)
	case ir.Shr:
		return v1 >> (uint32(v2) & 31)
	case ir.UShr:
		return int32(uint32(v1) >> (uint32(v2) & 31))
	case ir.And:
		return v1 & v2
	case ir.Or:
		return v1 | v2
	case ir.Xor:
		return v1 ^ v2
	default:
		return 0
	}
}

func b2i(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// Evaluate is the intra-procedural evaluate(exp, in): it
// resolves Var references and BinaryExps against `in`, and returns NAC for
// anything else (in particular field and array accesses — the
// inter-procedural analysis in package interproc overrides those cases
// with heap-aware logic and delegates back to Evaluate for the Var/literal/
// binary cases).
func Evaluate(exp ir.Exp, in *CPFact) Value {
	switch e := exp.(type) {
	case *ir.Var:
		return in.Get(e)
	case ir.IntLiteral:
		return Constant(e.Value)
	case ir.BinaryExp:
		return evaluateBinary(e, in)
	default:
		return NACValue()
	}
}

func evaluateBinary(e ir.BinaryExp, in *CPFact) Value {
	v1 := in.Get(e.Operand1)
	v2 := in.Get(e.Operand2)
	divByZero := e.Op.IsDivOrRem() && v2.IsConst() && v2.ConstValue() == 0

	switch {
	case v1.IsConst() && v2.IsConst():
		if divByZero {
			return UndefValue()
		}
		return Constant(Compute(e.Op, v1.ConstValue(), v2.ConstValue()))
	case v1.IsNAC() || v2.IsNAC():
		// Division by a concrete zero is UNDEF even when the other
		// operand is NAC.
		if divByZero {
			return UndefValue()
		}
		return NACValue()
	default:
		return UndefValue()
	}
}
