// Package lexer turns source bytes into a flat token array in one linear
// pass (spec §4.2). It consumes the escape preprocessor's output so that
// identifiers spelled entirely (or partly) via `\uXXXX` escapes are
// still recognized as keywords, while the original spelling is retained.
package lexer

// Kind enumerates token kinds (spec §4.2, grouped).
type Kind uint8

const (
	EOF Kind = iota
	ERROR

	IDENTIFIER

	// Reserved keywords (never valid as identifiers).
	KwAbstract
	KwAssert
	KwBoolean
	KwBreak
	KwByte
	KwCase
	KwCatch
	KwChar
	KwClass
	KwConst
	KwContinue
	KwDefault
	KwDo
	KwDouble
	KwElse
	KwEnum
	KwExtends
	KwFinal
	KwFinally
	KwFloat
	KwFor
	KwGoto
	KwIf
	KwImplements
	KwImport
	KwInstanceof
	KwInt
	KwInterface
	KwLong
	KwNative
	KwNew
	KwPackage
	KwPrivate
	KwProtected
	KwPublic
	KwReturn
	KwShort
	KwStatic
	KwStrictfp
	KwSuper
	KwSwitch
	KwSynchronized
	KwThis
	KwThrow
	KwThrows
	KwTransient
	KwTry
	KwVoid
	KwVolatile
	KwWhile

	// Literal keywords.
	KwTrue
	KwFalse
	KwNull

	// Literals.
	IntLiteral
	LongLiteral
	FloatLiteral
	DoubleLiteral
	StringLiteral
	TextBlockLiteral
	CharLiteral

	// Operators.
	OpPlus
	OpMinus
	OpStar
	OpSlash
	OpPercent
	OpAmp
	OpPipe
	OpCaret
	OpTilde
	OpBang
	OpEq
	OpLt
	OpGt
	OpPlusPlus
	OpMinusMinus
	OpShl
	OpShr
	OpUshr
	OpEqEq
	OpNotEq
	OpLe
	OpGe
	OpAndAnd
	OpOrOr
	OpPlusEq
	OpMinusEq
	OpStarEq
	OpSlashEq
	OpPercentEq
	OpAmpEq
	OpPipeEq
	OpCaretEq
	OpShlEq
	OpShrEq
	OpUshrEq
	OpArrow
	OpColonColon
	OpEllipsis

	// Separators.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semi
	Comma
	Dot
	At
	Colon
	Question

	// Comments (exposed as their own tokens because they become nodes).
	LineComment
	BlockComment
	JavadocComment
)

// keywords maps decoded identifier text to its reserved-keyword Kind.
// Contextual keywords (var, yield, record, sealed, permits, non-sealed,
// module, requires, exports, opens, uses, provides, with, to) are
// deliberately absent: they lex as plain IDENTIFIER tokens and the
// parser decides, by syntactic context, whether to treat them specially
// (spec §4.4 ambiguity resolutions).
var keywords = map[string]Kind{
	"abstract":     KwAbstract,
	"assert":       KwAssert,
	"boolean":      KwBoolean,
	"break":        KwBreak,
	"byte":         KwByte,
	"case":         KwCase,
	"catch":        KwCatch,
	"char":         KwChar,
	"class":        KwClass,
	"const":        KwConst,
	"continue":     KwContinue,
	"default":      KwDefault,
	"do":           KwDo,
	"double":       KwDouble,
	"else":         KwElse,
	"enum":         KwEnum,
	"extends":      KwExtends,
	"final":        KwFinal,
	"finally":      KwFinally,
	"float":        KwFloat,
	"for":          KwFor,
	"goto":         KwGoto,
	"if":           KwIf,
	"implements":   KwImplements,
	"import":       KwImport,
	"instanceof":   KwInstanceof,
	"int":          KwInt,
	"interface":    KwInterface,
	"long":         KwLong,
	"native":       KwNative,
	"new":          KwNew,
	"package":      KwPackage,
	"private":      KwPrivate,
	"protected":    KwProtected,
	"public":       KwPublic,
	"return":       KwReturn,
	"short":        KwShort,
	"static":       KwStatic,
	"strictfp":     KwStrictfp,
	"super":        KwSuper,
	"switch":       KwSwitch,
	"synchronized": KwSynchronized,
	"this":         KwThis,
	"throw":        KwThrow,
	"throws":       KwThrows,
	"transient":    KwTransient,
	"try":          KwTry,
	"void":         KwVoid,
	"volatile":     KwVolatile,
	"while":        KwWhile,
	"true":         KwTrue,
	"false":        KwFalse,
	"null":         KwNull,
}

// contextualKeywords lists identifiers that behave as keywords only in
// specific syntactic contexts (spec §4.2, §4.4). The lexer never
// special-cases them; IsContextualKeyword lets the parser/strategy
// layer test membership without duplicating the literal list.
var contextualKeywords = map[string]bool{
	"var":         true,
	"yield":       true,
	"record":      true,
	"sealed":      true,
	"permits":     true,
	"non-sealed":  true,
	"module":      true,
	"requires":    true,
	"exports":     true,
	"opens":       true,
	"uses":        true,
	"provides":    true,
	"with":        true,
	"to":          true,
}

// IsContextualKeyword reports whether text is one of the target
// language's contextual keywords.
func IsContextualKeyword(text string) bool {
	return contextualKeywords[text]
}

// Token is a single lexical unit (spec §3.2). DecodedText is populated
// only when the original spelling differs from its semantic value (a
// Unicode escape was involved); otherwise it is empty and callers should
// use the buffer span directly.
type Token struct {
	Kind         Kind
	Start        int
	End          int
	DecodedText  string
	IsTextBlock  bool // only meaningful when Kind == StringLiteral/TextBlockLiteral
}

// HasEscape reports whether this token's original spelling contains a
// decoded escape (spec P8).
func (t Token) HasEscape() bool {
	return t.DecodedText != ""
}
