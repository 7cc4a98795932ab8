package parser

// Concrete Strategy[*Parser] implementations for the Strategy
// Registry's covered special cases (spec §4.5): flexible constructor
// prologues, module import declarations, compact source files,
// primitive patterns, record deconstruction (with unnamed bindings),
// and string templates. register_defaults preloads one of each at its
// minimum version (spec §4.5 "Default strategies for the standard
// language subset are preloaded via register_defaults").
//
// Every strategy here is a zero-size type implementing
// strategy.Strategy[*Parser]; C being the parser itself (rather than a
// narrower cursor interface) is what lets Parse call back into the
// same private productions (parsePrimitivePattern, parseStringTemplate,
// ...) that the non-gated grammar uses elsewhere.

import (
	"errors"

	"github.com/standardbeagle/jparse/internal/langver"
	"github.com/standardbeagle/jparse/internal/lexer"
	"github.com/standardbeagle/jparse/internal/strategy"
)

// errStrategyFailed signals that a matched strategy's own production
// failed (it has already recorded its diagnostic via p.errorf); it
// carries no message of its own.
var errStrategyFailed = errors.New("strategy: parse failed")

// DefaultRegistry builds a fresh Registry preloaded with the standard
// language subset's version-gated strategies via RegisterDefaults.
func DefaultRegistry() *strategy.Registry[*Parser] {
	r := strategy.NewRegistry[*Parser]()
	RegisterDefaults(r)
	return r
}

// RegisterDefaults preloads r with the standard language subset's
// strategies (spec §4.5).
func RegisterDefaults(r *strategy.Registry[*Parser]) {
	r.Register(langver.FlexibleConstructorPrologueMinVersion, langver.ConstructorBody, flexibleConstructorPrologueStrategy{})
	r.Register(langver.ModuleImportMinVersion, langver.TopLevel, moduleImportStrategy{})
	r.Register(langver.CompactSourceMinVersion, langver.TopLevel, compactSourceStrategy{})
	r.Register(langver.PatternMatchingMinVersion, langver.Pattern, primitivePatternStrategy{})
	r.Register(langver.PatternMatchingMinVersion, langver.Pattern, recordPatternStrategy{})
	r.Register(langver.StringTemplateMinVersion, langver.Expression, stringTemplateStrategy{})
}

// --- flexible constructor prologue (spec §4.2, §4.5) --------------------

// flexibleConstructorPrologueStrategy matches on the version gate
// alone. checkConstructorPrologue only calls strategyMatches (never
// tryStrategy) for this phase, so Parse never actually runs — the
// registry match itself is the signal that relaxes the prologue
// ordering check.
type flexibleConstructorPrologueStrategy struct{}

func (flexibleConstructorPrologueStrategy) CanHandle(phase langver.Phase, ctx *Parser) bool {
	return phase == langver.ConstructorBody
}

func (flexibleConstructorPrologueStrategy) Parse(ctx *Parser) error { return nil }

func (flexibleConstructorPrologueStrategy) Priority() int { return 0 }

func (flexibleConstructorPrologueStrategy) Description() string {
	return "flexible-constructor-prologue"
}

// --- module import declarations (spec §4.2, §4.5) -----------------------

// moduleImportStrategy recognizes `import module Name;`, distinct from
// a type or static import.
type moduleImportStrategy struct{}

func (moduleImportStrategy) CanHandle(phase langver.Phase, ctx *Parser) bool {
	return phase == langver.TopLevel && ctx.at(lexer.KwImport) &&
		ctx.peek(1).Kind == lexer.IDENTIFIER &&
		ctx.buf.Slice(ctx.peek(1).Start, ctx.peek(1).End) == "module" &&
		ctx.peek(2).Kind == lexer.IDENTIFIER
}

func (moduleImportStrategy) Parse(ctx *Parser) error {
	id, ok := ctx.parseModuleImportDeclaration()
	if !ok {
		return errStrategyFailed
	}
	ctx.strategyNode = id
	return nil
}

func (moduleImportStrategy) Priority() int { return 10 }

func (moduleImportStrategy) Description() string { return "module-import-declaration" }

// --- compact source files (spec §4.2, §4.4, §4.5) ------------------------

// compactSourceStrategy admits a top-level member declaration with no
// enclosing type declaration. Its CanHandle only guards the version;
// the caller (parseTypeDeclarationBody's default case) only consults
// it once no type-declaration keyword matched, so the token shape is
// already implied by the call site.
type compactSourceStrategy struct{}

func (compactSourceStrategy) CanHandle(phase langver.Phase, ctx *Parser) bool {
	return phase == langver.TopLevel && !ctx.at(lexer.KwImport)
}

func (compactSourceStrategy) Parse(ctx *Parser) error {
	id, ok := ctx.parseMember(ctx.pendingMods)
	if !ok {
		return errStrategyFailed
	}
	ctx.strategyNode = id
	return nil
}

func (compactSourceStrategy) Priority() int { return 0 }

func (compactSourceStrategy) Description() string { return "compact-source-file" }

// --- patterns (spec §4.2, §4.5) ------------------------------------------

// primitivePatternStrategy matches a primitive type at the head of a
// pattern position (`int x`), tried before recordPatternStrategy's
// catch-all.
type primitivePatternStrategy struct{}

func (primitivePatternStrategy) CanHandle(phase langver.Phase, ctx *Parser) bool {
	return phase == langver.Pattern && primitiveKeywords[ctx.current().Kind]
}

func (primitivePatternStrategy) Parse(ctx *Parser) error {
	id, ok := ctx.parsePrimitivePattern()
	if !ok {
		return errStrategyFailed
	}
	ctx.strategyNode = id
	return nil
}

func (primitivePatternStrategy) Priority() int { return 10 }

func (primitivePatternStrategy) Description() string { return "primitive-pattern" }

// recordPatternStrategy handles the unnamed pattern, record
// deconstruction (including nested unnamed bindings), and the type
// pattern — every pattern-matching shape that doesn't start with a
// primitive keyword. It is the catch-all for langver.Pattern, so its
// CanHandle doesn't inspect the token; primitivePatternStrategy's
// higher priority ensures it is tried first.
type recordPatternStrategy struct{}

func (recordPatternStrategy) CanHandle(phase langver.Phase, ctx *Parser) bool {
	return phase == langver.Pattern
}

func (recordPatternStrategy) Parse(ctx *Parser) error {
	id, ok := ctx.parseRecordOrTypePattern()
	if !ok {
		return errStrategyFailed
	}
	ctx.strategyNode = id
	return nil
}

func (recordPatternStrategy) Priority() int { return 0 }

func (recordPatternStrategy) Description() string { return "record-deconstruction-pattern" }

// --- string templates (spec §4.5) ----------------------------------------

// stringTemplateStrategy recognizes a processor-prefixed template
// literal: `identifier '.' (string-literal|text-block-literal)`, a
// shape no other production in the grammar produces (a `.` is never
// followed directly by a string/text-block token otherwise).
type stringTemplateStrategy struct{}

func (stringTemplateStrategy) CanHandle(phase langver.Phase, ctx *Parser) bool {
	return phase == langver.Expression && ctx.at(lexer.IDENTIFIER) &&
		ctx.peek(1).Kind == lexer.Dot &&
		(ctx.peek(2).Kind == lexer.StringLiteral || ctx.peek(2).Kind == lexer.TextBlockLiteral)
}

func (stringTemplateStrategy) Parse(ctx *Parser) error {
	id, ok := ctx.parseStringTemplate()
	if !ok {
		return errStrategyFailed
	}
	ctx.strategyNode = id
	return nil
}

func (stringTemplateStrategy) Priority() int { return 0 }

func (stringTemplateStrategy) Description() string { return "string-template" }
