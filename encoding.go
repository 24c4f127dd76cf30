// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdom

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/jdom/internal/escape"
	"go4.org/mem"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string {
	return string(escape.AppendQuote(nil, mem.S(src)))
}

// Unquote decodes a JSON string value.  Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Invalid escapes are replaced by the Unicode replacement rune. Unquote
// reports an error for an incomplete escape sequence.
func Unquote(src string) ([]byte, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return nil, errors.New("missing quotations")
	}
	return escape.Unquote(mem.S(src[1 : len(src)-1]))
}

// Encoding identifies one of the Unicode encodings permitted for JSON text
// exchanged between systems that do not share an explicit charset.
type Encoding byte

const (
	UTF8 Encoding = iota
	UTF16BE
	UTF16LE
	UTF32BE
	UTF32LE
)

var encodingStr = [...]string{
	UTF8:    "UTF-8",
	UTF16BE: "UTF-16BE",
	UTF16LE: "UTF-16LE",
	UTF32BE: "UTF-32BE",
	UTF32LE: "UTF-32LE",
}

func (e Encoding) String() string {
	if int(e) >= len(encodingStr) {
		return "unknown encoding"
	}
	return encodingStr[e]
}

// ParseEncoding returns the Encoding named by s, ignoring case and the
// hyphen, so "utf8", "UTF-8", and "utf-8" all name UTF8.
func ParseEncoding(s string) (Encoding, error) {
	norm := strings.ToUpper(strings.ReplaceAll(s, "-", ""))
	for i, name := range encodingStr {
		if norm == strings.ReplaceAll(name, "-", "") {
			return Encoding(i), nil
		}
	}
	return UTF8, fmt.Errorf("unknown encoding %q", s)
}

// DetectEncoding guesses the encoding of JSON text from its first bytes.
// A byte order mark is decisive. Otherwise, since the first two characters
// of a JSON text are ASCII, the pattern of zero bytes among the first four
// reveals the encoding:
//
//	00 00 00 xx  UTF-32BE
//	00 xx 00 xx  UTF-16BE
//	xx 00 00 00  UTF-32LE
//	xx 00 xx 00  UTF-16LE
//	xx xx xx xx  UTF-8
func DetectEncoding(head []byte) Encoding {
	switch {
	case hasPrefix(head, 0x00, 0x00, 0xfe, 0xff):
		return UTF32BE
	case hasPrefix(head, 0xff, 0xfe, 0x00, 0x00):
		return UTF32LE
	case hasPrefix(head, 0xfe, 0xff):
		return UTF16BE
	case hasPrefix(head, 0xff, 0xfe):
		return UTF16LE
	case hasPrefix(head, 0xef, 0xbb, 0xbf):
		return UTF8
	}
	if len(head) >= 4 {
		switch {
		case head[0] == 0 && head[1] == 0 && head[2] == 0:
			return UTF32BE
		case head[1] == 0 && head[2] == 0 && head[3] == 0:
			return UTF32LE
		}
	}
	if len(head) >= 2 {
		switch {
		case head[0] == 0 && head[1] != 0:
			return UTF16BE
		case head[0] != 0 && head[1] == 0:
			return UTF16LE
		}
	}
	return UTF8
}

func hasPrefix(head []byte, bom ...byte) bool {
	return len(head) >= len(bom) && string(head[:len(bom)]) == string(bom)
}

func (e Encoding) decoder() encoding.Encoding {
	switch e {
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF32BE:
		return utf32.UTF32(utf32.BigEndian, utf32.UseBOM)
	case UTF32LE:
		return utf32.UTF32(utf32.LittleEndian, utf32.UseBOM)
	default:
		return unicode.UTF8BOM
	}
}

// NewDecodingReader returns a reader that delivers the contents of r as
// UTF-8, detecting the encoding of r from its first bytes. A leading byte
// order mark is removed.
//
// Detection uses the bytes delivered by the first read from r, and reads
// more, up to four bytes, only while those bytes contain a zero or a partial
// byte order mark. A short UTF-8 document is therefore not held waiting for
// input that has not arrived. Little-endian input without a byte order mark
// is detected only if the first read delivers at least two bytes.
func NewDecodingReader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	var head []byte
	for {
		_, err := br.Peek(max(len(head)+1, min(br.Buffered(), 4)))
		head, _ = br.Peek(min(br.Buffered(), 4))
		if err != nil && err != io.EOF {
			return nil, err
		} else if err == io.EOF || encodingSettled(head) {
			break
		}
	}
	return NewReaderWithEncoding(br, DetectEncoding(head)), nil
}

var byteOrderMarks = [][]byte{
	{0x00, 0x00, 0xfe, 0xff}, {0xff, 0xfe, 0x00, 0x00},
	{0xfe, 0xff}, {0xff, 0xfe}, {0xef, 0xbb, 0xbf},
}

// encodingSettled reports whether head is enough to choose an encoding.
func encodingSettled(head []byte) bool {
	if len(head) >= 4 {
		return true
	} else if len(head) == 0 || bytes.IndexByte(head, 0) >= 0 {
		return false
	}
	for _, bom := range byteOrderMarks {
		if len(head) < len(bom) && bytes.HasPrefix(bom, head) {
			return false
		}
	}
	return true
}

// NewReaderWithEncoding returns a reader that transcodes the contents of r
// from enc to UTF-8. A leading byte order mark is removed.
func NewReaderWithEncoding(r io.Reader, enc Encoding) io.Reader {
	return transform.NewReader(r, enc.decoder().NewDecoder())
}
