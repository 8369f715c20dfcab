package diag

import (
	"fmt"
)

// Code is the numeric template id of a diagnostic. Ranges group codes by
// the pipeline stage that raises them.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical (recovered, never raised)
	LexInfo                Code = 1000
	LexUnterminatedLiteral Code = 1001
	LexBadNumber           Code = 1002

	// Classification
	ClsInfo             Code = 2000
	ClsKindConflict     Code = 2001
	ClsUnresolvableKind Code = 2002
	ClsForMarkerClash   Code = 2003

	// Structural
	SynInfo              Code = 2100
	SynUnexpectedToken   Code = 2101
	SynLeftoverTokens    Code = 2102
	SynUnmatchedBracket  Code = 2103
	SynMissingOperand    Code = 2104
	SynExpectIdentifier  Code = 2105
	SynExpectExpression  Code = 2106
	SynExpectAssignment  Code = 2107
	SynPrematureEnd      Code = 2108
	SynMisplacedComma    Code = 2109
	SynExpressionCount   Code = 2110
	SynBadMemberAccess   Code = 2111
	SynBadStepValue      Code = 2112
	SynUnparsableTail    Code = 2113
	SynDuplicateDecl     Code = 2114

	// Type
	TypeInfo              Code = 3000
	TypeUnresolvedName    Code = 3001
	TypeRedefinition      Code = 3002
	TypeBadComponent      Code = 3003
	TypeBadEnumValue      Code = 3004
	TypeSelfRefConflict   Code = 3005
	TypeNotAnIdentifier   Code = 3006
	TypeVariableConflict  Code = 3007
	TypeMissingDescriptor Code = 3008

	// I/O (configuration loading in the CLI)
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:            "unknown error",
	LexInfo:                "lexical note",
	LexUnterminatedLiteral: "unterminated literal",
	LexBadNumber:           "malformed number literal",
	ClsInfo:                "classification note",
	ClsKindConflict:        "line kind conflicts with expected kinds",
	ClsUnresolvableKind:    "line kind could not be resolved",
	ClsForMarkerClash:      "for-loop keyword does not match its marker",
	SynInfo:                "syntax note",
	SynUnexpectedToken:     "unexpected token",
	SynLeftoverTokens:      "leftover tokens after expression",
	SynUnmatchedBracket:    "unmatched bracket",
	SynMissingOperand:      "missing operand",
	SynExpectIdentifier:    "expected identifier",
	SynExpectExpression:    "expected expression",
	SynExpectAssignment:    "expected assignment",
	SynPrematureEnd:        "premature end of line",
	SynMisplacedComma:      "misplaced separator",
	SynExpressionCount:     "wrong number of expressions",
	SynBadMemberAccess:     "non-identifier after component dot",
	SynBadStepValue:        "step value must be an integer literal",
	SynUnparsableTail:      "unparsable trailing tokens",
	SynDuplicateDecl:       "duplicate declaration",
	TypeInfo:               "type note",
	TypeUnresolvedName:     "unresolved type name",
	TypeRedefinition:       "type name already registered",
	TypeBadComponent:       "malformed record component",
	TypeBadEnumValue:       "malformed enumerator value",
	TypeSelfRefConflict:    "inconsistent self-reference",
	TypeNotAnIdentifier:    "type name must be an identifier",
	TypeVariableConflict:   "variable already bound to another type",
	TypeMissingDescriptor:  "missing type description",
	IOLoadFileError:        "cannot load file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 2100:
		return fmt.Sprintf("CLS%04d", ic)
	case ic >= 2100 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TYP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
