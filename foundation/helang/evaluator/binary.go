// File: binary.go
// Title: Binary Expression Reduction
// Description: Reduces chains of arithmetic and comparison operators with
//              an operand stack and an operator stack so that '*' binds
//              tighter than '+' and '-', which bind tighter than the
//              comparisons.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-14 v0.1.0: Arithmetic reduction
// - 2026-10-15 v0.1.0: Comparisons share the operator stack

package evaluator

import (
	"context"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
	"github.com/lwd-temp/helang/foundation/helang/ast"
	"github.com/lwd-temp/helang/foundation/helang/env"
	"github.com/lwd-temp/helang/foundation/helang/token"
	"github.com/lwd-temp/helang/foundation/helang/u8"
)

var relations = map[token.Kind]u8.Relation{
	token.LT:  u8.Less,
	token.LEQ: u8.LessEqual,
	token.GT:  u8.Greater,
	token.GEQ: u8.GreaterEqual,
	token.EQ:  u8.Equal,
	token.NEQ: u8.NotEqual,
}

func priority(op token.Kind) int {
	switch {
	case op == token.Mul:
		return 3
	case op == token.Add || op == token.Sub:
		return 2
	case op.IsComparison():
		return 1
	default:
		return 0
	}
}

// flatten unrolls the right-leaning chain the parser builds for
// "a op b op c ..." into its operands and operators.
func flatten(n *ast.Binary) ([]ast.Node, []token.Kind) {
	var (
		operands  []ast.Node
		operators []token.Kind
		current   ast.Node = n
	)
	for {
		b, ok := current.(*ast.Binary)
		if !ok {
			return append(operands, current), operators
		}
		operands = append(operands, b.Left)
		operators = append(operators, b.Op)
		current = b.Right
	}
}

func (ev *Evaluator) evalBinary(ctx context.Context, n *ast.Binary, e *env.Environment) (*u8.U8, error) {
	operandNodes, operators := flatten(n)

	operands := make([]*u8.U8, len(operandNodes))
	for i, node := range operandNodes {
		value, err := ev.Eval(ctx, node, e)
		if err != nil {
			return nil, err
		}
		operands[i] = value
	}

	values := []*u8.U8{operands[0]}
	var pending []token.Kind

	reduce := func() error {
		op := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		a, b := values[len(values)-2], values[len(values)-1]
		values = values[:len(values)-2]

		result, err := apply(op, a, b)
		if err != nil {
			return err
		}
		values = append(values, result)
		return nil
	}

	for i, op := range operators {
		for len(pending) > 0 && priority(pending[len(pending)-1]) >= priority(op) {
			if err := reduce(); err != nil {
				return nil, err
			}
		}
		pending = append(pending, op)
		values = append(values, operands[i+1])
	}
	for len(pending) > 0 {
		if err := reduce(); err != nil {
			return nil, err
		}
	}

	return values[0], nil
}

func apply(op token.Kind, a, b *u8.U8) (*u8.U8, error) {
	switch op {
	case token.Add:
		return a.Add(b)
	case token.Sub:
		return a.Sub(b)
	case token.Mul:
		return a.Mul(b), nil
	}

	relation, ok := relations[op]
	if !ok {
		return nil, heerror.Newf(heerror.CodeCyberNotSupported, "illegal operator: %s", ast.OperatorSymbol(op)).
			WithOperation("evaluator.Eval")
	}
	holds, err := a.Compare(relation, b)
	if err != nil {
		return nil, err
	}
	return u8.FromBool(holds), nil
}
