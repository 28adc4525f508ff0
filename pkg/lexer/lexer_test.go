package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `function add(a, b) -> c {
	let x := 4:i64
	x := add(a, b)
	// a comment
	/* block */
	if true { leave }
}`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenFunction, "function"},
		{TokenIdent, "add"},
		{TokenLParen, "("},
		{TokenIdent, "a"},
		{TokenComma, ","},
		{TokenIdent, "b"},
		{TokenRParen, ")"},
		{TokenArrow, "->"},
		{TokenIdent, "c"},
		{TokenLBrace, "{"},
		{TokenLet, "let"},
		{TokenIdent, "x"},
		{TokenColonEqual, ":="},
		{TokenNumber, "4"},
		{TokenColon, ":"},
		{TokenIdent, "i64"},
		{TokenIdent, "x"},
		{TokenColonEqual, ":="},
		{TokenIdent, "add"},
		{TokenLParen, "("},
		{TokenIdent, "a"},
		{TokenComma, ","},
		{TokenIdent, "b"},
		{TokenRParen, ")"},
		{TokenIf, "if"},
		{TokenTrue, "true"},
		{TokenLBrace, "{"},
		{TokenLeave, "leave"},
		{TokenRBrace, "}"},
		{TokenRBrace, "}"},
		{TokenEOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - wrong type. expected=%s, got=%s (literal %q)", i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - wrong literal. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestHexNumber(t *testing.T) {
	l := New("0xFF")
	tok := l.NextToken()
	if tok.Type != TokenNumber || tok.Literal != "0xFF" {
		t.Fatalf("expected hex number 0xFF, got %s %q", tok.Type, tok.Literal)
	}
}

func TestLineColumnTracking(t *testing.T) {
	l := New("a\nb")
	first := l.NextToken()
	if first.Line != 1 {
		t.Fatalf("expected first token on line 1, got %d", first.Line)
	}
	second := l.NextToken()
	if second.Line != 2 {
		t.Fatalf("expected second token on line 2, got %d", second.Line)
	}
}
