// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdom_test

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jdom"
	"github.com/google/go-cmp/cmp"
)

// scanAll returns the tokens of input, stopping at the first error.
func scanAll(input string) ([]jdom.Token, error) {
	var got []jdom.Token
	s := jdom.NewScanner(strings.NewReader(input))
	for {
		err := s.Next()
		if err == io.EOF {
			return got, nil
		} else if err != nil {
			return got, err
		}
		got = append(got, s.Token())
	}
}

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []jdom.Token
	}{
		// Empty inputs
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},
		{"\t  \r\n \t  \r\n", nil},

		// Constants
		{"true false null", []jdom.Token{jdom.True, jdom.False, jdom.Null}},

		// Punctuation
		{"{ [ ] } , :", []jdom.Token{
			jdom.LBrace, jdom.LSquare, jdom.RSquare, jdom.RBrace, jdom.Comma, jdom.Colon,
		}},

		// Strings
		{`"" "a b c" "a\nb\tc"`, []jdom.Token{jdom.String, jdom.String, jdom.String}},
		{`"\"\\\/\b\f\n\r\t"`, []jdom.Token{jdom.String}},
		{`"\u0000\u01fc\uAA9c"`, []jdom.Token{jdom.String}},
		{`"\ud83d\ude00" "\ud83d"`, []jdom.Token{jdom.String, jdom.String}},

		// Numbers
		{`0 -0 -1 5139 2.3 5e+9 3.6E+4 -0.001E-100 1e5`, []jdom.Token{
			jdom.Integer, jdom.Integer, jdom.Integer, jdom.Integer,
			jdom.Number, jdom.Number, jdom.Number, jdom.Number, jdom.Number,
		}},
		{`[0,1]`, []jdom.Token{jdom.LSquare, jdom.Integer, jdom.Comma, jdom.Integer, jdom.RSquare}},

		// Mixed types
		{`{true,"false":-15 null[]}`, []jdom.Token{
			jdom.LBrace, jdom.True, jdom.Comma, jdom.String, jdom.Colon,
			jdom.Integer, jdom.Null, jdom.LSquare, jdom.RSquare, jdom.RBrace,
		}},
		{`{"a": true, "b":[null, 1, 0.5]}`, []jdom.Token{
			jdom.LBrace,
			jdom.String, jdom.Colon, jdom.True, jdom.Comma,
			jdom.String, jdom.Colon,
			jdom.LSquare,
			jdom.Null, jdom.Comma, jdom.Integer, jdom.Comma, jdom.Number,
			jdom.RSquare,
			jdom.RBrace,
		}},
		{`"a",1,true
       false["b"]
       `, []jdom.Token{
			jdom.String, jdom.Comma, jdom.Integer, jdom.Comma, jdom.True,
			jdom.False, jdom.LSquare, jdom.String, jdom.RSquare,
		}},
	}

	for _, test := range tests {
		got, err := scanAll(test.input)
		if err != nil {
			t.Errorf("Next failed: %v", err)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScannerErrors(t *testing.T) {
	tests := []string{
		// Numbers
		"+1", "01", "-01", "00", "-", "-a", "1.", "1.e5", ".5", "1e", "1e+", "1E-",
		"0x1f", "1x", "1.5.2", "2a", "NaN", "Infinity", "-Infinity",

		// Constants
		"TRUE", "tru", "nul", "falsey", "nil",

		// Strings
		`"abc`, `"a` + "\x01" + `b"`, "\"a\nb\"", `"\x"`, `"\'"`, `"\u12"`, `"\u12g4"`,
		`'single'`,

		// Other junk
		"/* comment */", "#", "\u00a0",
	}
	for _, input := range tests {
		got, err := scanAll(input)
		var serr *jdom.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Input %#q: got tokens %v, err=%v; want *SyntaxError", input, got, err)
			continue
		}
		if serr.Kind != jdom.LexicalError {
			t.Errorf("Input %#q: got kind %v, want %v", input, serr.Kind, jdom.LexicalError)
		}
		if len(got) != 0 {
			t.Errorf("Input %#q: got tokens %v before the error", input, got)
		}
	}
}

func TestScannerText(t *testing.T) {
	mustScan := func(t *testing.T, input string, want jdom.Token) *jdom.Scanner {
		t.Helper()
		s := jdom.NewScanner(strings.NewReader(input))
		if err := s.Next(); err != nil {
			t.Fatalf("Next failed: %v", err)
		} else if s.Token() != want {
			t.Fatalf("Next token: got %v, want %v", s.Token(), want)
		}
		return s
	}

	t.Run("Integer", func(t *testing.T) {
		s := mustScan(t, `-15`, jdom.Integer)
		if got := string(s.Text()); got != "-15" {
			t.Errorf("Text: got %q, want -15", got)
		}
	})
	t.Run("Number", func(t *testing.T) {
		s := mustScan(t, `3.25e-5`, jdom.Number)
		if got, err := s.Unescape(); err != nil || got != "3.25e-5" {
			t.Errorf("Unescape: got %q, %v; want 3.25e-5", got, err)
		}
	})
	t.Run("Constants", func(t *testing.T) {
		mustScan(t, `true`, jdom.True)
		mustScan(t, `false`, jdom.False)
		mustScan(t, `null`, jdom.Null)
	})
	t.Run("String", func(t *testing.T) {
		const wantText = `"a\tb c\n"` // as written, with quotes
		const wantDec = "a\tb c\n"         // with escapes undone
		s := mustScan(t, `"a\tb c\n"`, jdom.String)
		if got := string(s.Text()); got != wantText {
			t.Errorf("Text: got %#q, want %#q", got, wantText)
		}
		if got, err := s.Unescape(); err != nil {
			t.Errorf("Unescape failed: %v", err)
		} else if got != wantDec {
			t.Errorf("Unescape: got %#q, want %#q", got, wantDec)
		}
	})
	t.Run("Surrogates", func(t *testing.T) {
		tests := []struct {
			input, want string
		}{
			{`"\ud83d\ude00"`, "\U0001F600"},
			{`"x\ud834\udd1ey"`, "x\U0001D11Ey"},
			{`"\ud83d"`, "\ufffd"},
			{`"\ud83d x"`, "\ufffd x"},
			{`"\ude00\ud83d"`, "\ufffd\ufffd"},
			{`"\ud83dA"`, "\ufffdA"},
		}
		for _, test := range tests {
			s := mustScan(t, test.input, jdom.String)
			got, err := s.Unescape()
			if err != nil {
				t.Errorf("Unescape %#q: unexpected error: %v", test.input, err)
			} else if got != test.want {
				t.Errorf("Unescape %#q: got %q, want %q", test.input, got, test.want)
			}
		}
	})
	t.Run("Copy", func(t *testing.T) {
		s := jdom.NewScanner(strings.NewReader(`"first" "second"`))
		if err := s.Next(); err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		cp := s.Copy()
		if err := s.Next(); err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if got := string(cp); got != `"first"` {
			t.Errorf("Copy: got %#q, want %#q", got, `"first"`)
		}
	})
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x02", `"\u0000\u0001\u0002"`},
		{`a "b c\" d"`, `"a \"b c\\\" d\""`},
		{`\ufffd`, `"\\ufffd"`},
		{"\u2028 \u2029 \ufffd", `"\u2028 \u2029 \ufffd"`},
		{"This is the end\v", `"This is the end\u000b"`},
		{"<\x1e>", `"<\u001e>"`},
		{"a\xffb", `"a\ufffdb"`},
		{"caf\u00e9 \U0001F600", "\"caf\u00e9 \U0001F600\""},
		{"a/b", `"a/b"`},
	}
	for _, test := range tests {
		got := jdom.Quote(test.input)
		if got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
	}
}

func TestScannerLoc(t *testing.T) {
	type tokPos struct {
		Tok jdom.Token
		Pos string
	}
	tests := []struct {
		input string
		want  []tokPos
	}{
		{"", nil},
		{"{ }", []tokPos{{jdom.LBrace, "1:0-1:1@0"}, {jdom.RBrace, "1:2-1:3@2"}}},
		{"true\n false\n", []tokPos{{jdom.True, "1:0-1:4@0"}, {jdom.False, "2:1-2:6@6"}}},
		{"[1,\n 2.5]", []tokPos{
			{jdom.LSquare, "1:0-1:1@0"}, {jdom.Integer, "1:1-1:2@1"}, {jdom.Comma, "1:2-1:3@2"},
			{jdom.Number, "2:1-2:4@5"}, {jdom.RSquare, "2:4-2:5@8"},
		}},
		{"\"\u00e9\" 1", []tokPos{{jdom.String, "1:0-1:4@0"}, {jdom.Integer, "1:5-1:6@5"}}},
	}
	for _, tc := range tests {
		var got []tokPos
		s := jdom.NewScanner(strings.NewReader(tc.input))
		for s.Next() == nil {
			loc := s.Location()
			got = append(got, tokPos{s.Token(), fmt.Sprintf("%v-%v@%d", loc.First, loc.Last, loc.Offset())})
		}
		if err := s.Err(); err != io.EOF {
			t.Errorf("Next failed: %v", err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestScannerErrorLoc(t *testing.T) {
	tests := []struct {
		input  string
		loc    string
		offset int
	}{
		{"[1,\n  01]", "2:5", 9},
		{"\"abc\n\"", "1:5", 5},
		{"  @", "1:2", 2},
	}
	for _, test := range tests {
		_, err := scanAll(test.input)
		var serr *jdom.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Input %#q: got %v, want *SyntaxError", test.input, err)
			continue
		}
		if got := serr.Location.String(); got != test.loc || serr.Offset != test.offset {
			t.Errorf("Input %#q: error at %s (offset %d), want %s (offset %d)",
				test.input, got, serr.Offset, test.loc, test.offset)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, true},                         // missing quotes
		{`"missing quote`, ``, true},           // missing quotes
		{`missing quote"`, ``, true},           // missing quotes
		{`""`, ``, false},                      // ok
		{`"ok go"`, "ok go", false},            // ok
		{`"abc\ndef"`, "abc\ndef", false},      // C escapes
		{`"\tabc\n"`, "\tabc\n", false},        // C escapes
		{`"\b\f\n\r\t"`, "\b\f\n\r\t", false},  // C escapes
		{`"a \u0026 b"`, "a & b", false},      // short Unicode escape
		{`"\u"`, ``, true},                     // incomplete Unicode escape
		{`"\u00"`, ``, true},                   // incomplete Unicode escape
		{`"\u00x9"`, "\ufffd", false},          // invalid Unicode escape
		{`"\u019 "`, "\ufffd", false},          // invalid Unicode escape
		{`"a\"b"`, `a"b`, false},               // ok
		{`"a\\b\\cd"`, `a\b\cd`, false},        // ok
		{`"\ud83d\ude00!"`, "\U0001F600!", false}, // surrogate pair
		{`"\udE00"`, "\ufffd", false},          // unpaired low surrogate
		{`"\"`, ``, true},                      // incomplete escape
	}

	for _, test := range tests {
		got, err := jdom.Unquote(test.input)
		if err != nil {
			if !test.fail {
				t.Errorf("Unquote(%#q): got %v, want no error", test.input, err)
			} else {
				t.Logf("Unquote(%#q): got expected error: %v", test.input, err)
			}
		} else if test.fail {
			t.Errorf("Unquote(%#q): got nil, want error", test.input)
		}
		if cmp := string(got); cmp != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, cmp, test.want)
		}
	}
}

func TestIsNumber(t *testing.T) {
	for _, ok := range []string{"0", "-0", "12", "1.5", "-0.25e+10", "1E7", "9007199254740993"} {
		if !jdom.IsNumber(ok) {
			t.Errorf("IsNumber(%q): got false, want true", ok)
		}
	}
	for _, bad := range []string{"", " 1", "1 ", "01", "+1", "1.", ".1", "1e", "0x10", "NaN", "1,2", `"1"`} {
		if jdom.IsNumber(bad) {
			t.Errorf("IsNumber(%q): got true, want false", bad)
		}
	}
}
