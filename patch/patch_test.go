// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package patch_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/jdom/dom"
	"github.com/creachadair/jdom/patch"
	"github.com/creachadair/jdom/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type applyCase struct {
	doc, patch, result string
}

// Cases adapted from RFC 6902 Appendix A.
var applyCases = []applyCase{
	{`{"foo":"bar"}`,
		`[{"op":"add","path":"/baz","value":"qux"}]`,
		`{"baz":"qux","foo":"bar"}`},
	{`{"foo":["bar","baz"]}`,
		`[{"op":"add","path":"/foo/1","value":"qux"}]`,
		`{"foo":["bar","qux","baz"]}`},
	{`{"baz":"qux","foo":"bar"}`,
		`[{"op":"remove","path":"/baz"}]`,
		`{"foo":"bar"}`},
	{`{"foo":["bar","qux","baz"]}`,
		`[{"op":"remove","path":"/foo/1"}]`,
		`{"foo":["bar","baz"]}`},
	{`{"baz":"qux","foo":"bar"}`,
		`[{"op":"replace","path":"/baz","value":"boo"}]`,
		`{"baz":"boo","foo":"bar"}`},
	{`{"foo":{"bar":"baz","waldo":"fred"},"qux":{"corge":"grault"}}`,
		`[{"op":"move","from":"/foo/waldo","path":"/qux/thud"}]`,
		`{"foo":{"bar":"baz"},"qux":{"corge":"grault","thud":"fred"}}`},
	{`{"foo":["all","grass","cows","eat"]}`,
		`[{"op":"move","from":"/foo/1","path":"/foo/3"}]`,
		`{"foo":["all","cows","eat","grass"]}`},
	{`{"baz":"qux","foo":["a",2,"c"]}`,
		`[{"op":"test","path":"/baz","value":"qux"},{"op":"test","path":"/foo/1","value":2}]`,
		`{"baz":"qux","foo":["a",2,"c"]}`},
	{`{"foo":"bar"}`,
		`[{"op":"add","path":"/child","value":{"grandchild":{}}}]`,
		`{"foo":"bar","child":{"grandchild":{}}}`},
	{`{"foo":"bar"}`,
		`[{"op":"add","path":"/baz","value":"qux","xyz":123}]`,
		`{"foo":"bar","baz":"qux"}`},
	{`{"/":9,"~1":10}`,
		`[{"op":"test","path":"/~01","value":10}]`,
		`{"/":9,"~1":10}`},
	{`{"foo":["bar"]}`,
		`[{"op":"add","path":"/foo/-","value":["abc","def"]}]`,
		`{"foo":["bar",["abc","def"]]}`},
	{`[1,2,3]`,
		`[{"op":"replace","path":"/1","value":99}]`,
		`[1,99,3]`},
	{`{"a":{"b":1}}`,
		`[{"op":"copy","from":"/a","path":"/c"},{"op":"replace","path":"/c/b","value":2}]`,
		`{"a":{"b":1},"c":{"b":2}}`},
	{`{"a":[1]}`,
		`[{"op":"move","from":"/a","path":"/a"}]`,
		`{"a":[1]}`},
	{`{"a":1}`,
		`[{"op":"replace","path":"","value":[true]}]`,
		`[true]`},
	{`{"a":1}`,
		`[{"op":"test","path":"","value":{"a":1.0}},{"op":"add","path":"","value":{}}]`,
		`{}`},
	{`{"a":{"b":{}}}`,
		`[{"op":"move","from":"/a/b","path":"/ab"}]`,
		`{"a":{},"ab":{}}`},
	{`{"x":1E99999999999}`,
		`[{"op":"test","path":"/x","value":10e99999999998}]`,
		`{"x":1e99999999999}`},
}

func TestApply(t *testing.T) {
	assert := assert.New(t)

	for i, c := range applyCases {
		p, err := patch.ParseString(c.patch)
		if !assert.NoErrorf(err, "failed to parse patch at case %d", i) {
			continue
		}
		doc := dom.MustParseString(c.doc)
		out, err := p.Apply(doc)
		if !assert.NoErrorf(err, "failed to apply patch at case %d\nDoc: %s\nPatch: %s", i, c.doc, c.patch) {
			continue
		}
		assert.Truef(dom.Equal(dom.MustParseString(c.result), out),
			"not equal at case %d\nWant: %s\nGot: %s", i, c.result, out.JSON())
		assert.Truef(dom.Equal(dom.MustParseString(c.doc), doc), "input modified at case %d", i)
	}
}

type errorCase struct {
	doc, patch string
	want       error
}

var errorCases = []errorCase{
	{`{"foo":"bar"}`, `[{"op":"add","path":"/baz/bat","value":"qux"}]`, pointer.ErrNotFound},
	{`{"foo":"bar"}`, `[{"op":"remove","path":"/baz"}]`, pointer.ErrNotFound},
	{`{"foo":"bar"}`, `[{"op":"replace","path":"/baz","value":1}]`, pointer.ErrNotFound},
	{`[1,2]`, `[{"op":"add","path":"/3","value":1}]`, pointer.ErrRange},
	{`[1,2]`, `[{"op":"add","path":"/-1","value":1}]`, pointer.ErrRange},
	{`[1,2]`, `[{"op":"remove","path":"/-"}]`, pointer.ErrRange},
	{`{"foo":[1]}`, `[{"op":"add","path":"/foo/bar","value":1}]`, pointer.ErrIndex},
	{`{"a":1}`, `[{"op":"remove","path":""}]`, pointer.ErrRoot},
	{`{"a":1}`, `[{"op":"add","path":"","value":5}]`, pointer.ErrNotStructure},
	{`{"a":{"b":1}}`, `[{"op":"move","from":"/a","path":"/a/c"}]`, patch.ErrMoveIntoChild},
	{`{"a":1}`, `[{"op":"move","from":"/x","path":"/y"}]`, pointer.ErrNotFound},
	{`{"a":1}`, `[{"op":"copy","from":"/x","path":"/y"}]`, pointer.ErrNotFound},
	{`{"a":1}`, `[{"op":"test","path":"/x","value":1}]`, pointer.ErrNotFound},
}

func TestApplyErrors(t *testing.T) {
	assert := assert.New(t)

	for i, c := range errorCases {
		p, err := patch.ParseString(c.patch)
		if !assert.NoErrorf(err, "failed to parse patch at case %d", i) {
			continue
		}
		out, err := p.Apply(dom.MustParseString(c.doc))
		assert.Nilf(out, "result not nil at case %d", i)
		assert.ErrorIsf(err, c.want, "wrong error at case %d", i)

		var aerr *patch.ApplyError
		if assert.ErrorAsf(err, &aerr, "wrong error type at case %d", i) {
			assert.Equal(0, aerr.Index)
		}
	}
}

func TestApplyMalformed(t *testing.T) {
	assert := assert.New(t)

	a, b := pointer.MustParse("/a"), pointer.MustParse("/b")
	tests := []struct {
		patch patch.Patch
		index int
		msg   string
	}{
		{patch.Patch{{Op: patch.Add, Path: a}}, 0, `missing "value"`},
		{patch.Patch{{Op: patch.Replace, Path: a}}, 0, `missing "value"`},
		{patch.Patch{{Op: patch.Test, Path: a}}, 0, `missing "value"`},
		{patch.Patch{{Op: "frob", Path: a}}, 0, "unknown operation"},
		{patch.Patch{{Op: patch.Remove, Path: a}, {Op: patch.Add, Path: b}}, 1, `missing "value"`},
	}
	for i, test := range tests {
		doc := dom.MustParseString(`{"a":1}`)
		out, err := test.patch.Apply(doc)
		assert.Nilf(out, "result not nil at case %d", i)

		var oerr *patch.OpError
		if assert.ErrorAsf(err, &oerr, "wrong error type at case %d", i) {
			assert.Equalf(test.index, oerr.Index, "wrong index at case %d", i)
			assert.Containsf(oerr.Error(), test.msg, "wrong message at case %d", i)
		}
		var aerr *patch.ApplyError
		if assert.ErrorAsf(err, &aerr, "wrong error type at case %d", i) {
			assert.Equalf(test.index, aerr.Index, "wrong index at case %d", i)
		}
		assert.Equalf(`{"a":1}`, doc.JSON(), "input modified at case %d", i)
	}

	// A single operation is checked in the same way.
	out, err := patch.Operation{Op: patch.Add, Path: a}.Apply(dom.MustParseString(`{}`))
	assert.Nil(out)
	var oerr *patch.OpError
	assert.ErrorAs(err, &oerr)
}

func TestExtremeExponents(t *testing.T) {
	doc := dom.MustParseString(`{"x":1E99999999999}`)

	p, err := patch.ParseString(`[{"op":"test","path":"/x","value":1}]`)
	require.NoError(t, err)
	out, err := p.Apply(doc)
	assert.Nil(t, out)
	var terr *patch.TestError
	assert.ErrorAs(t, err, &terr)

	p, err = patch.ParseString(`[{"op":"test","path":"/x","value":1e100000000000}]`)
	require.NoError(t, err)
	_, err = p.Apply(doc)
	assert.ErrorAs(t, err, &terr)
}

func TestAtomic(t *testing.T) {
	doc := dom.MustParseString(`{"baz":"qux","foo":["a",2,"c"]}`)
	p, err := patch.ParseString(`[
	  {"op":"replace","path":"/baz","value":"changed"},
	  {"op":"add","path":"/foo/-","value":"d"},
	  {"op":"test","path":"/foo/1","value":"two"},
	  {"op":"remove","path":"/foo"}
	]`)
	require.NoError(t, err)

	out, err := p.Apply(doc)
	require.Error(t, err)
	assert.Nil(t, out)

	var aerr *patch.ApplyError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, 2, aerr.Index)
	assert.Equal(t, patch.Test, aerr.Op.Op)

	var terr *patch.TestError
	require.ErrorAs(t, err, &terr)
	assert.True(t, dom.Equal(dom.Int(2), terr.Got))
	assert.True(t, dom.Equal(dom.String("two"), terr.Want))

	assert.Equal(t, `{"baz":"qux","foo":["a",2,"c"]}`, doc.JSON())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		index int
		msg   string
	}{
		{`[{"path":"/a"}]`, 0, `missing "op"`},
		{`[{"op":"add","value":1}]`, 0, `missing "path"`},
		{`[{"op":"remove","path":"/a"},{"op":"add","path":"/a"}]`, 1, `missing "value"`},
		{`[{"op":"move","path":"/a"}]`, 0, `missing "from"`},
		{`[{"op":"copy","path":"/a","from":5}]`, 0, `"from" must be a string`},
		{`[{"op":"frob","path":"/a"}]`, 0, `unknown operation`},
		{`[{"op":"test","path":"a","value":1}]`, 0, `invalid "path"`},
		{`[{"op":1,"path":"/a"}]`, 0, `"op" must be a string`},
		{`[[]]`, 0, `must be an object`},
	}
	for _, test := range tests {
		_, err := patch.ParseString(test.input)
		var oerr *patch.OpError
		if !errors.As(err, &oerr) {
			t.Errorf("Parse %#q: got %v, want OpError", test.input, err)
			continue
		}
		assert.Equalf(t, test.index, oerr.Index, "Parse %#q: wrong index", test.input)
		assert.Containsf(t, oerr.Error(), test.msg, "Parse %#q: wrong message", test.input)
	}

	_, err := patch.ParseString(`{"op":"add"}`)
	assert.Error(t, err, "a patch must be an array")
	_, err = patch.ParseString(`[`)
	assert.Error(t, err)
}

func TestBuilder(t *testing.T) {
	p, err := patch.NewBuilder().
		Add("/a/-", dom.Int(1)).
		Test("/a/0", dom.Int(1)).
		Copy("/b", "/a").
		Move("/c", "/b").
		Replace("/c/0", dom.String("x")).
		Remove("/a").
		Build()
	require.NoError(t, err)

	const want = `[{"op":"add","path":"/a/-","value":1},` +
		`{"op":"test","path":"/a/0","value":1},` +
		`{"op":"copy","path":"/b","from":"/a"},` +
		`{"op":"move","path":"/c","from":"/b"},` +
		`{"op":"replace","path":"/c/0","value":"x"},` +
		`{"op":"remove","path":"/a"}]`
	assert.Equal(t, want, p.JSON())

	out, err := p.Apply(dom.MustParseString(`{"a":[]}`))
	require.NoError(t, err)
	assert.Equal(t, `{"c":["x"]}`, out.JSON())

	// The JSON form of a patch parses back to the same patch.
	q, err := patch.ParseString(p.JSON())
	require.NoError(t, err)
	assert.Equal(t, p.JSON(), q.JSON())

	_, err = patch.NewBuilder().Add("bad", dom.Null{}).Replace("/x", nil).Build()
	var oerr *patch.OpError
	require.ErrorAs(t, err, &oerr)
	assert.True(t, strings.Contains(err.Error(), `missing "value"`), "error: %v", err)
}
