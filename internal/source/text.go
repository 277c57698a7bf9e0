package source

import (
	"bytes"
	"fmt"
	"slices"
	"unicode/utf8"

	"fortio.org/safecast"
	"golang.org/x/text/encoding/unicode"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func removeBOM(content []byte) ([]byte, bool) {
	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		return rest, true
	}
	return content, false
}

// decodeUTF16 transcodes UTF-16 content to UTF-8. It only fires when the input is not
// valid UTF-8; the byte order comes from the BOM, little-endian otherwise.
func decodeUTF16(content []byte) ([]byte, bool, error) {
	if utf8.Valid(content) {
		return content, false, nil
	}
	if len(content) < 2 {
		return content, false, nil
	}
	bom := unicode.IgnoreBOM
	if (content[0] == 0xFF && content[1] == 0xFE) || (content[0] == 0xFE && content[1] == 0xFF) {
		bom = unicode.ExpectBOM
	}
	endian := unicode.LittleEndian
	if content[0] == 0xFE && content[1] == 0xFF {
		endian = unicode.BigEndian
	}
	out, err := unicode.UTF16(endian, bom).NewDecoder().Bytes(content)
	if err != nil {
		return content, false, fmt.Errorf("decode utf-16: %w", err)
	}
	return out, true, nil
}

// buildLineIndex records every line terminator. "\r\n" counts once (at the \n).
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'})+1)
	for i, b := range content {
		switch b {
		case '\n', '\f':
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				continue
			}
		default:
			continue
		}
		off, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("line index overflow: %w", err))
		}
		out = append(out, off)
	}
	return out
}

// toLineCol maps a byte offset to its position. A terminator belongs to the
// line it ends.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// число терминаторов строго до off
	line, _ := slices.BinarySearch(lineIdx, off)

	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}
	lineNum, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return LineCol{Line: lineNum, Col: off - startOff + 1}
}
