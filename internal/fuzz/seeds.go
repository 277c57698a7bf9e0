package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

var seedExtensions = map[string]bool{".css": true, ".scss": true, ".sass": true}

// inlineSeeds cover the constructs that have their own scanner branch.
var inlineSeeds = []string{
	"",
	"a { color: red; }",
	"@media (min-width: 10px) { .a:hover > b ~ c + d { x: url(a.png) } }",
	"$gap: 4px !default; .a { margin: -$gap * 2; }",
	"@mixin m($args...) { #{$prop}-x: if($a == 1, 2, 3); }",
	"// line\n/* block /* nested */ still */ x",
	"/* unterminated",
	"'unterminated\n\"also\\\nfine\"",
	"\\31 23 \\0 \\D800 \\110000 \\",
	"-\\41 --custom -.5 -x - 1e3 1e+ 1.e5 .5em 12%",
	"<!-- --> <= >= != === .. ...",
	"\x00\x01\x7f 日本語 ﻿",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все таблицы стилей
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error { //nolint:errcheck
		if walkErr != nil || d.IsDir() || !seedExtensions[filepath.Ext(path)] {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return src
	}
	return src[:maxSeedBytes]
}
