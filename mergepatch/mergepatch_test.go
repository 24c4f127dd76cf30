// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package mergepatch_test

import (
	"testing"

	"github.com/creachadair/jdom/dom"
	"github.com/creachadair/jdom/mergepatch"
	"github.com/stretchr/testify/assert"
)

// Cases from RFC 7396 Appendix A, plus a few more.
var applyCases = []struct {
	target, patch, result string
}{
	{`{"a":"b"}`, `{"a":"c"}`, `{"a":"c"}`},
	{`{"a":"b"}`, `{"b":"c"}`, `{"a":"b","b":"c"}`},
	{`{"a":"b"}`, `{"a":null}`, `{}`},
	{`{"a":"b","b":"c"}`, `{"a":null}`, `{"b":"c"}`},
	{`{"a":["b"]}`, `{"a":"c"}`, `{"a":"c"}`},
	{`{"a":"c"}`, `{"a":["b"]}`, `{"a":["b"]}`},
	{`{"a":{"b":"c"}}`, `{"a":{"b":"d","c":null}}`, `{"a":{"b":"d"}}`},
	{`{"a":[{"b":"c"}]}`, `{"a":[1]}`, `{"a":[1]}`},
	{`["a","b"]`, `["c","d"]`, `["c","d"]`},
	{`{"a":"b"}`, `["c"]`, `["c"]`},
	{`{"a":"foo"}`, `null`, `null`},
	{`{"a":"foo"}`, `"bar"`, `"bar"`},
	{`{"e":null}`, `{"a":1}`, `{"e":null,"a":1}`},
	{`[1,2]`, `{"a":"b","c":null}`, `{"a":"b"}`},
	{`{}`, `{"a":{"bb":{"ccc":null}}}`, `{"a":{"bb":{}}}`},
	{`{"a":1,"b":2}`, `{"b":null,"c":3}`, `{"a":1,"c":3}`},
}

func TestApply(t *testing.T) {
	assert := assert.New(t)

	for i, c := range applyCases {
		target := dom.MustParseString(c.target)
		got := mergepatch.Apply(target, dom.MustParseString(c.patch))
		assert.Truef(dom.Equal(dom.MustParseString(c.result), got),
			"case %d: got %s, want %s", i, got.JSON(), c.result)
		assert.Equalf(c.target, target.JSON(), "case %d: target modified", i)
	}

	// An absent target behaves as an empty one for object patches.
	got := mergepatch.Apply(nil, dom.MustParseString(`{"a":{"b":null,"c":1}}`))
	assert.Equal(`{"a":{"c":1}}`, got.JSON())
}

var diffCases = []struct {
	src, dst, patch string
}{
	{`{"a":1}`, `{"a":1}`, `{}`},
	{`{"a":1,"b":2}`, `{"a":1,"c":3}`, `{"b":null,"c":3}`},
	{`{"a":{"x":1,"y":2}}`, `{"a":{"x":1,"y":3}}`, `{"a":{"y":3}}`},
	{`{"a":[1,2]}`, `{"a":[1]}`, `{"a":[1]}`},
	{`{"a":{"x":1}}`, `{"a":"flat"}`, `{"a":"flat"}`},
	{`[1]`, `{"a":1}`, `{"a":1}`},
	{`{"a":1}`, `true`, `true`},
	{`{"n":1e99999999999,"m":1}`, `{"n":10E99999999998,"m":1e99999999999}`, `{"m":1e99999999999}`},
}

func TestDiff(t *testing.T) {
	assert := assert.New(t)

	for i, c := range diffCases {
		src, dst := dom.MustParseString(c.src), dom.MustParseString(c.dst)
		p := mergepatch.Diff(src, dst)
		assert.Equalf(c.patch, p.JSON(), "case %d: wrong patch", i)

		got := mergepatch.Apply(src, p)
		assert.Truef(dom.Equal(dst, got), "case %d: got %s, want %s", i, got.JSON(), c.dst)
	}
}
