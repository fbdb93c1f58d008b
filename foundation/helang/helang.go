// File: helang.go
// Title: HeLang Interpreter Engine
// Description: Ties the lexer, parser and evaluator together into an engine
//              that runs source text and script files against an
//              environment. The engine is the script runner used by the
//              logo statement.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-14 v0.1.0: Initial engine
// - 2026-10-16 v0.1.0: Script files and nested script limit
// - 2026-10-17 v0.1.0: Per-output engine copies for concurrent drivers
// - 2026-10-18 v0.1.0: Optional parse cache
// - 2026-10-19 v0.1.0: Node count in debug logs

package helang

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
	helog "github.com/lwd-temp/helang/foundation/core/log"
	"github.com/lwd-temp/helang/foundation/helang/ast"
	"github.com/lwd-temp/helang/foundation/helang/env"
	"github.com/lwd-temp/helang/foundation/helang/evaluator"
	"github.com/lwd-temp/helang/foundation/helang/lexer"
	"github.com/lwd-temp/helang/foundation/helang/parser"
	"github.com/lwd-temp/helang/foundation/helang/token"
	"github.com/lwd-temp/helang/foundation/helang/u8"
)

const (
	// DefaultMaxSourceLength limits the size of a single program
	DefaultMaxSourceLength = 64 * 1024

	// MaxScriptDepth limits how deeply scripts may run other scripts
	MaxScriptDepth = 16
)

// Options configures the engine
type Options struct {
	Logger *helog.Logger

	// Output receives program output (default: os.Stdout)
	Output io.Writer

	// MaxSourceLength rejects longer programs; zero selects the default
	MaxSourceLength int

	LogoPath     string
	NoScripts    bool // logo reports CYBER_NOT_SUPPORTED instead of reading files
	Region       evaluator.RegionResolver
	CyberRegions []string
	SpeedTester  evaluator.SpeedTester

	// ParseCache, if set, keeps parsed programs keyed by their source
	ParseCache ParseCache
}

// ParseCache stores parsed programs. Trees are never modified during
// evaluation, so a cached tree may be evaluated concurrently.
type ParseCache interface {
	Get(source string) (ast.Node, bool)
	Set(source string, node ast.Node)
}

// Engine runs HeLang programs. Engines are safe for concurrent use as long
// as each goroutine evaluates against its own environment.
type Engine struct {
	evaluator *evaluator.Evaluator
	logger    *helog.Logger
	options   Options
}

type depthKey struct{}

// New creates a new engine with the given options
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = helog.GetDefault()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.MaxSourceLength <= 0 {
		opts.MaxSourceLength = DefaultMaxSourceLength
	}

	en := &Engine{
		logger:  opts.Logger.WithField("component", "engine"),
		options: opts,
	}
	var scripts evaluator.ScriptRunner = en
	if opts.NoScripts {
		scripts = nil
	}
	en.evaluator = evaluator.New(evaluator.Options{
		Logger:       opts.Logger,
		Output:       opts.Output,
		Scripts:      scripts,
		LogoPath:     opts.LogoPath,
		Region:       opts.Region,
		CyberRegions: opts.CyberRegions,
		SpeedTester:  opts.SpeedTester,
	})
	return en
}

// WithOutput returns a copy of the engine writing program output to w
func (en *Engine) WithOutput(w io.Writer) *Engine {
	opts := en.options
	opts.Output = w
	return New(opts)
}

// Output returns the writer program output goes to
func (en *Engine) Output() io.Writer {
	return en.options.Output
}

// Tokenize splits source into tokens
func (en *Engine) Tokenize(source string) ([]token.Token, error) {
	if err := en.checkLength(source); err != nil {
		return nil, err
	}
	return lexer.New(source, lexer.Options{Logger: en.options.Logger}).Tokenize()
}

// Parse tokenizes and parses source
func (en *Engine) Parse(source string) (ast.Node, error) {
	cache := en.options.ParseCache
	if cache != nil {
		if node, ok := cache.Get(source); ok {
			return node, nil
		}
	}

	tokens, err := en.Tokenize(source)
	if err != nil {
		return nil, err
	}
	node, err := parser.New(parser.Options{Logger: en.options.Logger}).Parse(tokens)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		cache.Set(source, node)
	}
	return node, nil
}

// Eval evaluates an already parsed program
func (en *Engine) Eval(ctx context.Context, node ast.Node, e *env.Environment) (*u8.U8, error) {
	return en.evaluator.Eval(ctx, node, e)
}

// Run parses and evaluates source against e
func (en *Engine) Run(ctx context.Context, source string, e *env.Environment) (*u8.U8, error) {
	timer := en.logger.StartTimer("run")

	node, err := en.Parse(source)
	if err != nil {
		timer.Stop(helog.Fields{"stage": "parse"})
		return nil, err
	}
	if en.logger.IsLevelEnabled(helog.LevelDebug) {
		en.logger.Debug("Parsed program", helog.Fields{"nodes": countNodes(node)})
	}

	value, err := en.evaluator.Eval(ctx, node, e)
	timer.Stop(helog.Fields{"variables": e.Len()})
	return value, err
}

// RunFile reads and runs a script file against e
func (en *Engine) RunFile(ctx context.Context, path string, e *env.Environment) (*u8.U8, error) {
	source, err := en.ReadScript(path)
	if err != nil {
		return nil, err
	}

	en.logger.Debug("Running script", helog.Fields{"path": path, "bytes": len(source)})
	return en.Run(ctx, source, e)
}

// RunScript runs a script file from within another program. Nested scripts
// share the caller's environment.
func (en *Engine) RunScript(ctx context.Context, path string, e *env.Environment) error {
	depth, _ := ctx.Value(depthKey{}).(int)
	if depth >= MaxScriptDepth {
		return heerror.Newf(heerror.CodeCyberNotSupported, "scripts nested deeper than %d levels", MaxScriptDepth).
			WithOperation("engine.RunScript").
			WithDetail("path", path)
	}

	_, err := en.RunFile(context.WithValue(ctx, depthKey{}, depth+1), path, e)
	return err
}

// ReadScript loads the source of a script file
func (en *Engine) ReadScript(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := heerror.CodeInternal
		if errors.Is(err, fs.ErrNotExist) {
			code = heerror.CodeNotFound
		}
		return "", heerror.Wrap(err, "failed to read script").
			WithCode(code).
			WithOperation("engine.ReadScript").
			WithDetail("path", path)
	}
	return string(data), nil
}

func countNodes(node ast.Node) int {
	n := 0
	ast.Inspect(node, func(ast.Node) bool {
		n++
		return true
	})
	return n
}

func (en *Engine) checkLength(source string) error {
	if len(source) > en.options.MaxSourceLength {
		return heerror.Newf(heerror.CodeInvalidInput, "source of %d bytes exceeds the limit of %d bytes",
			len(source), en.options.MaxSourceLength).
			WithOperation("engine.Parse")
	}
	return nil
}
