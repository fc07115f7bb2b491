package frontend

import (
	"strings"
	"testing"

	"github.com/dekarrin/wlp4c/internal/wlp4/types"
	"github.com/stretchr/testify/assert"
)

func Test_Scan(t *testing.T) {
	testCases := []struct {
		name   string
		source string
		expect []types.Token
	}{
		{
			name:   "empty input",
			source: "",
			expect: []types.Token{
				{Kind: types.BOF, Lexeme: "BOF"},
				{Kind: types.EOF, Lexeme: "EOF"},
			},
		},
		{
			name:   "strips line comments",
			source: "int x; // this is ignored\n",
			expect: []types.Token{
				{Kind: types.BOF, Lexeme: "BOF"},
				{Kind: types.INT, Lexeme: "int"},
				{Kind: types.ID, Lexeme: "x"},
				{Kind: types.SEMI, Lexeme: ";"},
				{Kind: types.EOF, Lexeme: "EOF"},
			},
		},
		{
			name:   "two-character operators take priority over one-character prefixes",
			source: "a <= b",
			expect: []types.Token{
				{Kind: types.BOF, Lexeme: "BOF"},
				{Kind: types.ID, Lexeme: "a"},
				{Kind: types.LE, Lexeme: "<="},
				{Kind: types.ID, Lexeme: "b"},
				{Kind: types.EOF, Lexeme: "EOF"},
			},
		},
		{
			name:   "keywords are recognized, not left as ID",
			source: "if (a) return 1; else delete a;",
			expect: []types.Token{
				{Kind: types.BOF, Lexeme: "BOF"},
				{Kind: types.IF, Lexeme: "if"},
				{Kind: types.LPAREN, Lexeme: "("},
				{Kind: types.ID, Lexeme: "a"},
				{Kind: types.RPAREN, Lexeme: ")"},
				{Kind: types.RETURN, Lexeme: "return"},
				{Kind: types.NUM, Lexeme: "1"},
				{Kind: types.SEMI, Lexeme: ";"},
				{Kind: types.ELSE, Lexeme: "else"},
				{Kind: types.DELETE, Lexeme: "delete"},
				{Kind: types.ID, Lexeme: "a"},
				{Kind: types.SEMI, Lexeme: ";"},
				{Kind: types.EOF, Lexeme: "EOF"},
			},
		},
		{
			name:   "statements split across lines without a blank trailing space don't false-positive",
			source: "int x;\nreturn x;",
			expect: []types.Token{
				{Kind: types.BOF, Lexeme: "BOF"},
				{Kind: types.INT, Lexeme: "int"},
				{Kind: types.ID, Lexeme: "x"},
				{Kind: types.SEMI, Lexeme: ";"},
				{Kind: types.RETURN, Lexeme: "return"},
				{Kind: types.ID, Lexeme: "x"},
				{Kind: types.SEMI, Lexeme: ";"},
				{Kind: types.EOF, Lexeme: "EOF"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			toks, err := Scan(strings.NewReader(tc.source))

			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, toks)
		})
	}
}

func Test_Scan_errors(t *testing.T) {
	testCases := []struct {
		name   string
		source string
	}{
		{name: "digit directly followed by letter", source: "123abc"},
		{name: "leading zero on a multi-digit literal", source: "007"},
		{name: "lone exclamation mark", source: "a ! b"},
		{name: "literal larger than 2^31-1", source: "99999999999"},
		{name: "two operators touch with no separating space", source: "a<==b"},
		{name: "identifier and keyword touch across a line break", source: "int\nx"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := Scan(strings.NewReader(tc.source))

			assert.Error(err)
		})
	}
}
