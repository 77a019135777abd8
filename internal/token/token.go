// Package token defines the fixed vocabulary of the DDL lexer: token
// kinds, the Token value itself, and the case-insensitive keyword table.
package token

import "fmt"

// Kind tags a Token with its lexical category. The zero value is never
// produced by the lexer; ILLEGAL marks it explicitly.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF
	ERROR

	IDENT  // bare or quoted identifier, quotes stripped
	NUMBER // integer or floating literal
	STRING // single-quoted string literal, content unescaped

	// Punctuation.
	LPAREN    // (
	RPAREN    // )
	COMMA     // ,
	SEMICOLON // ;
	DOT       // .
	EQ        // =
	DOUBLECOLON
	LBRACKET // [
	RBRACKET // ]
	OPERATOR // a maximal run of SQL operator characters, e.g. >=, <>, ||, ->>

	keywordStart // sentinel: everything after this is a keyword kind

	CREATE
	ALTER
	TABLE
	TEMPORARY
	TEMP
	UNLOGGED
	IF
	NOT
	EXISTS
	OF
	PARTITION
	FOR
	VALUES
	IN
	FROM
	TO
	WITH
	MODULUS
	REMAINDER
	DEFAULT
	CONSTRAINT
	CHECK
	UNIQUE
	PRIMARY
	KEY
	REFERENCES
	FOREIGN
	NULL
	GENERATED
	ALWAYS
	AS
	IDENTITY
	BY
	STORED
	VIRTUAL
	EXCLUDE
	MATCH
	FULL
	PARTIAL
	SIMPLE
	DEFERRABLE
	INITIALLY
	DEFERRED
	IMMEDIATE
	ENFORCED
	CASCADE
	RESTRICT
	ACTION
	SET
	NO
	ON
	DELETE
	UPDATE
	COMMIT
	PRESERVE
	DROP
	ROWS
	COLLATE
	STORAGE
	PLAIN
	EXTERNAL
	EXTENDED
	MAIN
	COMPRESSION
	INHERITS
	LIKE
	INCLUDING
	EXCLUDING
	USING
	WHERE
	TABLESPACE
	WITHOUT
	OIDS
	GLOBAL
	LOCAL
	RANGE
	LIST
	HASH
	MINVALUE
	MAXVALUE
	NULLS
	DISTINCT
	FIRST
	LAST
	ASC
	DESC
	INCLUDE
	OVERLAPS
	PERIOD
	COMMENTS
	CONSTRAINTS
	DEFAULTS
	INDEXES
	STATISTICS
	ALL
	TYPE

	// CREATE TYPE specific.
	ENUM
	SUBTYPE
	CANONICAL
	INPUT
	OUTPUT
	RECEIVE
	SEND
	TYPMOD_IN
	TYPMOD_OUT
	ANALYZE
	INTERNALLENGTH
	PASSEDBYVALUE
	ALIGNMENT
	PREFERRED
	DELIMITER
	ELEMENT
	COLLATABLE
	VARIABLE
)

var kindNames = map[Kind]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", ERROR: "ERROR",
	IDENT: "IDENT", NUMBER: "NUMBER", STRING: "STRING",
	LPAREN: "(", RPAREN: ")", COMMA: ",", SEMICOLON: ";", DOT: ".",
	EQ: "=", DOUBLECOLON: "::", LBRACKET: "[", RBRACKET: "]", OPERATOR: "OPERATOR",

	CREATE: "CREATE", ALTER: "ALTER", TABLE: "TABLE", TEMPORARY: "TEMPORARY",
	TEMP: "TEMP", UNLOGGED: "UNLOGGED", IF: "IF", NOT: "NOT", EXISTS: "EXISTS",
	OF: "OF", PARTITION: "PARTITION", FOR: "FOR", VALUES: "VALUES", IN: "IN",
	FROM: "FROM", TO: "TO", WITH: "WITH", MODULUS: "MODULUS", REMAINDER: "REMAINDER",
	DEFAULT: "DEFAULT", CONSTRAINT: "CONSTRAINT", CHECK: "CHECK", UNIQUE: "UNIQUE",
	PRIMARY: "PRIMARY", KEY: "KEY", REFERENCES: "REFERENCES", FOREIGN: "FOREIGN",
	NULL: "NULL", GENERATED: "GENERATED", ALWAYS: "ALWAYS", AS: "AS",
	IDENTITY: "IDENTITY", BY: "BY", STORED: "STORED", VIRTUAL: "VIRTUAL",
	EXCLUDE: "EXCLUDE", MATCH: "MATCH", FULL: "FULL", PARTIAL: "PARTIAL",
	SIMPLE: "SIMPLE", DEFERRABLE: "DEFERRABLE", INITIALLY: "INITIALLY",
	DEFERRED: "DEFERRED", IMMEDIATE: "IMMEDIATE", ENFORCED: "ENFORCED",
	CASCADE: "CASCADE", RESTRICT: "RESTRICT", ACTION: "ACTION", SET: "SET",
	NO: "NO", ON: "ON", DELETE: "DELETE", UPDATE: "UPDATE", COMMIT: "COMMIT",
	PRESERVE: "PRESERVE", DROP: "DROP", ROWS: "ROWS", COLLATE: "COLLATE",
	STORAGE: "STORAGE", PLAIN: "PLAIN", EXTERNAL: "EXTERNAL", EXTENDED: "EXTENDED",
	MAIN: "MAIN", COMPRESSION: "COMPRESSION", INHERITS: "INHERITS", LIKE: "LIKE",
	INCLUDING: "INCLUDING", EXCLUDING: "EXCLUDING", USING: "USING", WHERE: "WHERE",
	TABLESPACE: "TABLESPACE", WITHOUT: "WITHOUT", OIDS: "OIDS", GLOBAL: "GLOBAL",
	LOCAL: "LOCAL", RANGE: "RANGE", LIST: "LIST", HASH: "HASH", MINVALUE: "MINVALUE",
	MAXVALUE: "MAXVALUE", NULLS: "NULLS", DISTINCT: "DISTINCT", FIRST: "FIRST",
	LAST: "LAST", ASC: "ASC", DESC: "DESC", INCLUDE: "INCLUDE", OVERLAPS: "OVERLAPS",
	PERIOD: "PERIOD", COMMENTS: "COMMENTS", CONSTRAINTS: "CONSTRAINTS",
	DEFAULTS: "DEFAULTS", INDEXES: "INDEXES", STATISTICS: "STATISTICS", ALL: "ALL",
	TYPE: "TYPE",

	ENUM: "ENUM", SUBTYPE: "SUBTYPE", CANONICAL: "CANONICAL", INPUT: "INPUT",
	OUTPUT: "OUTPUT", RECEIVE: "RECEIVE", SEND: "SEND", TYPMOD_IN: "TYPMOD_IN",
	TYPMOD_OUT: "TYPMOD_OUT", ANALYZE: "ANALYZE", INTERNALLENGTH: "INTERNALLENGTH",
	PASSEDBYVALUE: "PASSEDBYVALUE", ALIGNMENT: "ALIGNMENT", PREFERRED: "PREFERRED",
	DELIMITER: "DELIMITER", ELEMENT: "ELEMENT", COLLATABLE: "COLLATABLE",
	VARIABLE: "VARIABLE",
}

// String renders the kind's canonical name, used in diagnostics and tests.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether k is one of the fixed dialect keywords.
func (k Kind) IsKeyword() bool {
	return k > keywordStart
}

// keywords maps the upper-cased spelling of every dialect keyword to its
// Kind. Built once at package init and never mutated afterward, per the
// "global immutable keyword table" guidance.
var keywords map[string]Kind

func init() {
	keywords = make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		if k > keywordStart {
			keywords[name] = k
		}
	}
}

// Lookup returns the keyword Kind for the upper-cased identifier ident, or
// (IDENT, false) if ident is not a keyword.
func Lookup(upperIdent string) (Kind, bool) {
	if k, ok := keywords[upperIdent]; ok {
		return k, true
	}
	return IDENT, false
}

// Token is a single lexical unit: its kind, literal text (decoded —
// quotes/escapes already stripped for IDENT and STRING), 1-based source
// position of its first character, and the byte span [Offset, EndOffset)
// it occupies in the original source — used by the parser's expression
// captures to slice literal source text rather than rebuild it.
type Token struct {
	Kind      Kind
	Text      string
	Line      int
	Column    int
	Offset    int
	EndOffset int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Text, t.Line, t.Column)
}
