// File: evaluator.go
// Title: HeLang Tree-Walking Evaluator
// Description: Evaluates syntax trees against an environment. Every node is
//              handled by a single type switch; side effects that reach
//              outside the interpreter (scripts, region lookup, the speed
//              test) go through injected collaborators.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-14 v0.1.0: Initial evaluator
// - 2026-10-16 v0.1.0: Collaborators injected through Options

package evaluator

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
	helog "github.com/lwd-temp/helang/foundation/core/log"
	"github.com/lwd-temp/helang/foundation/helang/ast"
	"github.com/lwd-temp/helang/foundation/helang/env"
	"github.com/lwd-temp/helang/foundation/helang/u8"
)

// DefaultLogoPath is the script run by the logo statement
const DefaultLogoPath = "./lib/logo.he"

// DefaultCyberRegions lists the regions that count as the Cyber Spaces
var DefaultCyberRegions = []string{"UNITED STATES", "JAPAN"}

// ScriptRunner runs a source file against an existing environment
type ScriptRunner interface {
	RunScript(ctx context.Context, path string, e *env.Environment) error
}

// RegionResolver returns the region name of the current network location
type RegionResolver interface {
	Resolve(ctx context.Context) (string, error)
}

// SpeedTester runs the 5G speed test and reports progress to w
type SpeedTester interface {
	RunSpeedTest(ctx context.Context, w io.Writer) error
}

// Options configures evaluator behavior
type Options struct {
	Logger *helog.Logger

	// Output receives print, sprint and collaborator output
	Output io.Writer

	Scripts      ScriptRunner
	LogoPath     string
	Region       RegionResolver
	CyberRegions []string
	SpeedTester  SpeedTester
}

// Evaluator evaluates syntax trees
type Evaluator struct {
	logger  *helog.Logger
	options Options
}

// New creates a new evaluator with the given options
func New(opts Options) *Evaluator {
	if opts.Logger == nil {
		opts.Logger = helog.GetDefault()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogoPath == "" {
		opts.LogoPath = DefaultLogoPath
	}
	if opts.CyberRegions == nil {
		opts.CyberRegions = DefaultCyberRegions
	}

	return &Evaluator{
		logger:  opts.Logger.WithField("component", "evaluator"),
		options: opts,
	}
}

// Output returns the writer program output goes to
func (ev *Evaluator) Output() io.Writer {
	return ev.options.Output
}

// Eval evaluates node against e and returns its value. The context is
// passed on to collaborators; evaluation itself is not interruptible.
func (ev *Evaluator) Eval(ctx context.Context, node ast.Node, e *env.Environment) (*u8.U8, error) {
	switch n := node.(type) {
	case *ast.Block:
		for _, stmt := range n.Statements {
			if _, err := ev.Eval(ctx, stmt, e); err != nil {
				return nil, err
			}
		}
		return u8.Empty(), nil

	case *ast.Void:
		return u8.Empty(), nil

	case *ast.VarDef:
		value := u8.Empty()
		if n.Init != nil {
			var err error
			if value, err = ev.Eval(ctx, n.Init, e); err != nil {
				return nil, err
			}
		}
		e.Declare(n.Name, value)
		return u8.Empty(), nil

	case *ast.VarAssign:
		if _, err := e.Lookup(n.Name); err != nil {
			return nil, ev.located(err, n)
		}
		value, err := ev.Eval(ctx, n.Value, e)
		if err != nil {
			return nil, err
		}
		if err := e.Assign(n.Name, value); err != nil {
			return nil, ev.located(err, n)
		}
		return value, nil

	case *ast.VarIncrement:
		value, err := e.Increment(n.Name)
		if err != nil {
			return nil, ev.located(err, n)
		}
		return value, nil

	case *ast.VarRef:
		value, err := e.Lookup(n.Name)
		if err != nil {
			return nil, ev.located(err, n)
		}
		return value, nil

	case *ast.EmptyU8Init:
		return u8.Zeros(n.Length), nil

	case *ast.OrU8Init:
		return u8.New(n.Values...), nil

	case *ast.U8Get:
		target, err := ev.Eval(ctx, n.Target, e)
		if err != nil {
			return nil, err
		}
		index, err := ev.Eval(ctx, n.Index, e)
		if err != nil {
			return nil, err
		}
		return target.Get(index), nil

	case *ast.U8Set:
		target, err := ev.Eval(ctx, n.Target, e)
		if err != nil {
			return nil, err
		}
		index, err := ev.Eval(ctx, n.Index, e)
		if err != nil {
			return nil, err
		}
		value, err := ev.Eval(ctx, n.Value, e)
		if err != nil {
			return nil, err
		}
		if err := target.Set(index, value); err != nil {
			return nil, ev.located(err, n)
		}
		return u8.Empty(), nil

	case *ast.Print:
		value, err := ev.Eval(ctx, n.Value, e)
		if err != nil {
			return nil, err
		}
		if _, err := fmt.Fprintln(ev.options.Output, value.String()); err != nil {
			return nil, heerror.Wrap(err, "failed to write output").WithCode(heerror.CodeInternal)
		}
		return value, nil

	case *ast.Sprint:
		value, err := ev.Eval(ctx, n.Value, e)
		if err != nil {
			return nil, err
		}
		text, err := value.Chars()
		if err != nil {
			return nil, ev.located(err, n)
		}
		if _, err := fmt.Fprintln(ev.options.Output, text); err != nil {
			return nil, heerror.Wrap(err, "failed to write output").WithCode(heerror.CodeInternal)
		}
		return value, nil

	case *ast.Binary:
		value, err := ev.evalBinary(ctx, n, e)
		if err != nil {
			return nil, ev.located(err, n)
		}
		return value, nil

	case *ast.Logo:
		return u8.Empty(), ev.logo(ctx, n, e)

	case *ast.Test5G:
		return u8.Empty(), ev.test5G(ctx, n)

	case *ast.Cyberspaces:
		return u8.Empty(), ev.cyberspaces(ctx, n)

	default:
		return nil, heerror.Newf(heerror.CodeCyberNotSupported, "cannot evaluate %T", node).
			WithOperation("evaluator.Eval")
	}
}

func (ev *Evaluator) logo(ctx context.Context, n *ast.Logo, e *env.Environment) error {
	if ev.options.Scripts == nil {
		return ev.unavailable("logo", n)
	}
	ev.logger.Debug("Running logo script", helog.Fields{"path": ev.options.LogoPath})
	return ev.options.Scripts.RunScript(ctx, ev.options.LogoPath, e)
}

func (ev *Evaluator) test5G(ctx context.Context, n *ast.Test5G) error {
	if ev.options.SpeedTester == nil {
		return ev.unavailable("test5g", n)
	}
	return ev.options.SpeedTester.RunSpeedTest(ctx, ev.options.Output)
}

func (ev *Evaluator) cyberspaces(ctx context.Context, n *ast.Cyberspaces) error {
	if ev.options.Region == nil {
		return ev.unavailable("cyberspaces", n)
	}

	out := ev.options.Output
	fmt.Fprintln(out, "Getting your location...")

	region, err := ev.options.Region.Resolve(ctx)
	if err != nil {
		if !heerror.HasCode(err, heerror.CodeNetworkError) {
			err = heerror.Wrap(err, "failed to get location").WithCode(heerror.CodeNetworkError)
		}
		return ev.located(err, n)
	}

	fmt.Fprintf(out, "Your location is %s.\n", region)
	if ev.isCyberRegion(region) {
		fmt.Fprintln(out, "Congratulations! You are in the Cyber Spaces!")
	} else {
		fmt.Fprintln(out, "What a pity! It seems that you are not in the Cyber Spaces.")
	}
	return nil
}

func (ev *Evaluator) isCyberRegion(region string) bool {
	region = strings.TrimSpace(region)
	for _, r := range ev.options.CyberRegions {
		if strings.EqualFold(r, region) {
			return true
		}
	}
	return false
}

func (ev *Evaluator) unavailable(feature string, n ast.Node) error {
	return ev.located(heerror.Newf(heerror.CodeCyberNotSupported, "%s is not available", feature).
		WithOperation("evaluator.Eval"), n)
}

// located attaches the node position to errors that do not carry one yet
func (ev *Evaluator) located(err error, n ast.Node) error {
	if err == nil {
		return nil
	}
	heErr, ok := heerror.As(err)
	if !ok {
		return err
	}
	if _, _, has := heErr.Position(); !has {
		pos := n.Position()
		if pos.Line > 0 {
			heErr.WithPosition(pos.Line, pos.Column)
		}
	}
	return err
}
