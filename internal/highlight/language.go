package highlight

import (
	"path/filepath"
	"strings"
)

// Language is a coarse hint selecting comment rules and a keyword set.
type Language int

const (
	LanguagePlain Language = iota
	LanguageRust
	LanguageGo
	LanguageC
	LanguageJavaScript
	LanguageTOML
	LanguagePython
	LanguageShell
	LanguageYAML
)

// CommentStyle describes which comment markers a language recognizes.
type CommentStyle int

const (
	// CommentNone disables comment detection.
	CommentNone CommentStyle = iota
	// CommentLine recognizes a single line-comment prefix.
	CommentLine
	// CommentLineAndBlock recognizes "//" line comments and "/* */" blocks
	// that may continue onto following lines.
	CommentLineAndBlock
)

type languageSpec struct {
	name       string
	comments   CommentStyle
	linePrefix string
	keywords   map[string]struct{}
}

var languageSpecs = map[Language]languageSpec{
	LanguagePlain: {name: "plain"},
	LanguageRust: {
		name:       "rust",
		comments:   CommentLineAndBlock,
		linePrefix: "//",
		keywords: wordSet(
			"as", "async", "await", "break", "const", "continue", "crate", "dyn", "else", "enum",
			"extern", "false", "fn", "for", "if", "impl", "in", "let", "loop", "match", "mod", "move",
			"mut", "pub", "ref", "return", "self", "Self", "static", "struct", "super", "trait", "true",
			"type", "unsafe", "use", "where", "while", "union", "box", "try", "yield", "macro",
			"macro_rules",
		),
	},
	LanguageGo: {
		name:       "go",
		comments:   CommentLineAndBlock,
		linePrefix: "//",
		keywords: wordSet(
			"break", "case", "chan", "const", "continue", "default", "defer", "else", "fallthrough",
			"for", "func", "go", "goto", "if", "import", "interface", "map", "package", "range",
			"return", "select", "struct", "switch", "type", "var", "nil", "iota",
		),
	},
	LanguageC: {
		name:       "c",
		comments:   CommentLineAndBlock,
		linePrefix: "//",
		keywords: wordSet(
			"auto", "break", "case", "char", "const", "continue", "default", "do", "double", "else",
			"enum", "extern", "float", "for", "goto", "if", "inline", "int", "long", "register",
			"return", "short", "signed", "sizeof", "static", "struct", "switch", "typedef", "union",
			"unsigned", "void", "volatile", "while",
		),
	},
	LanguageJavaScript: {
		name:       "javascript",
		comments:   CommentLine,
		linePrefix: "//",
		keywords: wordSet(
			"async", "await", "break", "case", "catch", "class", "const", "continue", "default",
			"delete", "do", "else", "export", "extends", "finally", "for", "function", "if", "import",
			"in", "instanceof", "let", "new", "of", "return", "switch", "this", "throw", "try",
			"typeof", "var", "void", "while", "yield", "undefined",
		),
	},
	LanguageTOML: {name: "toml", comments: CommentLine, linePrefix: "#"},
	LanguagePython: {
		name:       "python",
		comments:   CommentLine,
		linePrefix: "#",
		keywords: wordSet(
			"False", "None", "True", "and", "as", "assert", "async", "await", "break", "class",
			"continue", "def", "del", "elif", "else", "except", "finally", "for", "from", "global",
			"if", "import", "in", "is", "lambda", "nonlocal", "not", "or", "pass", "raise", "return",
			"try", "while", "with", "yield", "match", "case",
		),
	},
	LanguageShell: {
		name:       "shell",
		comments:   CommentLine,
		linePrefix: "#",
		keywords: wordSet(
			"if", "then", "else", "elif", "fi", "for", "while", "until", "do", "done", "case", "esac",
			"in", "function", "return", "local", "export", "readonly",
		),
	},
	LanguageYAML: {name: "yaml", comments: CommentLine, linePrefix: "#"},
}

var extLanguages = map[string]Language{
	"rs":   LanguageRust,
	"go":   LanguageGo,
	"c":    LanguageC,
	"h":    LanguageC,
	"js":   LanguageJavaScript,
	"mjs":  LanguageJavaScript,
	"cjs":  LanguageJavaScript,
	"toml": LanguageTOML,
	"py":   LanguagePython,
	"sh":   LanguageShell,
	"bash": LanguageShell,
	"yaml": LanguageYAML,
	"yml":  LanguageYAML,
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// LanguageForExt maps a file extension, with or without the leading dot and in
// any case, to a language hint. Unknown extensions are plain.
func LanguageForExt(ext string) Language {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if lang, ok := extLanguages[ext]; ok {
		return lang
	}
	return LanguagePlain
}

// LanguageForPath is LanguageForExt applied to the extension of path.
func LanguageForPath(path string) Language {
	return LanguageForExt(filepath.Ext(path))
}

func (l Language) spec() languageSpec {
	if spec, ok := languageSpecs[l]; ok {
		return spec
	}
	return languageSpecs[LanguagePlain]
}

func (l Language) String() string {
	return l.spec().name
}

// Comments reports the comment style and, for line comments, the prefix.
func (l Language) Comments() (CommentStyle, string) {
	spec := l.spec()
	return spec.comments, spec.linePrefix
}

// IsKeyword reports whether word is a reserved word of the language. The check
// is case-sensitive.
func (l Language) IsKeyword(word string) bool {
	_, ok := l.spec().keywords[word]
	return ok
}
