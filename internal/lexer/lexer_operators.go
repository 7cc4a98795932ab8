package lexer

// opTable lists multi-character operators in descending length so
// scanOperatorOrSeparator can apply maximal munch by simple prefix
// matching against the decoded character stream (spec §4.2 policy).
var opTable = []struct {
	text string
	kind Kind
}{
	{">>>=", OpUshrEq},
	{"...", OpEllipsis},
	{"<<=", OpShlEq},
	{">>=", OpShrEq},
	{">>>", OpUshr},
	{"->", OpArrow},
	{"::", OpColonColon},
	{"++", OpPlusPlus},
	{"--", OpMinusMinus},
	{"<<", OpShl},
	{">>", OpShr},
	{"==", OpEqEq},
	{"!=", OpNotEq},
	{"<=", OpLe},
	{">=", OpGe},
	{"&&", OpAndAnd},
	{"||", OpOrOr},
	{"+=", OpPlusEq},
	{"-=", OpMinusEq},
	{"*=", OpStarEq},
	{"/=", OpSlashEq},
	{"%=", OpPercentEq},
	{"&=", OpAmpEq},
	{"|=", OpPipeEq},
	{"^=", OpCaretEq},
	{"+", OpPlus},
	{"-", OpMinus},
	{"*", OpStar},
	{"/", OpSlash},
	{"%", OpPercent},
	{"&", OpAmp},
	{"|", OpPipe},
	{"^", OpCaret},
	{"~", OpTilde},
	{"!", OpBang},
	{"=", OpEq},
	{"<", OpLt},
	{">", OpGt},
	{"(", LParen},
	{")", RParen},
	{"{", LBrace},
	{"}", RBrace},
	{"[", LBracket},
	{"]", RBracket},
	{";", Semi},
	{",", Comma},
	{".", Dot},
	{"@", At},
	{":", Colon},
	{"?", Question},
}

// scanOperatorOrSeparator applies maximal munch against opTable. Every
// candidate character compares against the *logical* (escape-decoded)
// stream one rune at a time so an escape never silently splits a
// multi-character operator (in practice escapes never appear inside
// operators, but this keeps the scan uniform with the rest of the lexer).
func (lx *Lexer) scanOperatorOrSeparator(start int) Token {
	for _, op := range opTable {
		if lx.matchesAt(start, op.text) {
			end := start
			for range op.text {
				_, n := lx.charAt(end)
				end += n
			}
			lx.pos = end
			return Token{Kind: op.kind, Start: start, End: end}
		}
	}

	// Unreachable for any byte accepted by isOperatorOrSeparatorStart,
	// but guards against a future addition to that set without a
	// matching opTable entry.
	_, n := lx.charAt(start)
	lx.pos = start + n
	return Token{Kind: ERROR, Start: start, End: lx.pos}
}

func (lx *Lexer) matchesAt(pos int, text string) bool {
	p := pos
	for _, want := range text {
		if p >= len(lx.text) {
			return false
		}
		r, n := lx.charAt(p)
		if r != want {
			return false
		}
		p += n
	}
	return true
}
