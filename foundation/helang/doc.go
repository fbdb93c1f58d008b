// File: doc.go
// Title: HeLang Package Documentation
// Description: Documents the interpreter packages and the engine that
//              combines them.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-14 v0.1.0: Initial documentation

/*
Package helang implements the HeLang interpreter: a language whose only
value type is u8, an ordered list of integers.

Package: helang
Title: HeLang Interpreter
Description: Source text flows through the lexer (package lexer), the
             backtracking parser (package parser) and the tree-walking
             evaluator (package evaluator). Variables live in an explicit
             environment (package env). The Engine in this package wires
             the stages together and runs whole programs, script files
             and interactive sessions.
Author: lwd-temp
Version: v0.1.0
Created: 2026-10-14
Modified: 2026-10-17

# Language Overview

	u8 a = 1 | 2 | 3;      // declare with a value
	u8 b;                  // declare an empty vector
	a[1 | 3] = 12;         // 1-based element assignment, 0 means every element
	print a[2];            // filtered read
	b = a + 1;             // element-wise arithmetic, length-1 operands broadcast
	sprint 72 | 105;       // print as characters
	a++;                   // increment every element
	test5g;                // 5G speed test
	cyberspaces;           // are you in the Cyber Spaces?
	logo;                  // run the logo script

'*' binds tighter than '+' and '-', which bind tighter than the comparisons
'<', '<=', '>', '>=', '==' and '!='. Comparisons pad the shorter operand with
zeros and yield 1 | 0 as a single-element vector.

# Usage

	engine := helang.New(helang.Options{Output: os.Stdout})

	e := env.New()
	if _, err := engine.Run(ctx, "u8 a = 1 | 2; print a + 1;", e); err != nil {
	    log.Fatal(err)
	}

	session := engine.NewSession()
	session.Execute(ctx, "u8 a = 1")   // semicolon added
	session.Execute(ctx, "print a")

Errors are *error.Error values from foundation/core/error; error.IsHeLang
reports the ones an interactive session survives.
*/
package helang
