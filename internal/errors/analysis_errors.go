package errors

import (
	"fmt"
	"strings"
)

// AnalysisErrorBuilder provides a fluent interface for creating diagnostics with suggestions
type AnalysisErrorBuilder struct {
	err AnalysisError
}

// NewAnalysisError creates a new error builder
func NewAnalysisError(code, message string, pos Position) *AnalysisErrorBuilder {
	return &AnalysisErrorBuilder{
		err: AnalysisError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewAnalysisWarning creates a new warning builder
func NewAnalysisWarning(code, message string, pos Position) *AnalysisErrorBuilder {
	return &AnalysisErrorBuilder{
		err: AnalysisError{
			Level:    Warning,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *AnalysisErrorBuilder) WithLength(length int) *AnalysisErrorBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *AnalysisErrorBuilder) WithSuggestion(message string) *AnalysisErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *AnalysisErrorBuilder) WithReplacement(message, replacement string) *AnalysisErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
	})
	return b
}

// WithNote adds a note to the error
func (b *AnalysisErrorBuilder) WithNote(note string) *AnalysisErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *AnalysisErrorBuilder) WithHelp(help string) *AnalysisErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed diagnostic
func (b *AnalysisErrorBuilder) Build() AnalysisError {
	return b.err
}

// Common diagnostic constructors with suggestions

// UnknownTypeName creates an error for a name that resolves to no declaration
func UnknownTypeName(name string, pos Position, similarNames []string) AnalysisError {
	builder := NewAnalysisError(ErrorUnknownTypeName, fmt.Sprintf("unknown type name '%s'", name), pos).
		WithLength(len(name))

	if len(similarNames) > 0 {
		builder = builder.WithSuggestion(didYouMean(similarNames))
	} else {
		builder = builder.WithSuggestion("declare the contract, struct, enum or alias before referring to it").
			WithNote("user-defined type names are resolved against the compilation unit's registry")
	}

	return builder.Build()
}

// InvalidArrayLength creates an error for a malformed fixed-array length
func InvalidArrayLength(text string, pos Position) AnalysisError {
	return NewAnalysisError(ErrorInvalidArrayLength, fmt.Sprintf("invalid array length '%s'", text), pos).
		WithLength(len(text)).
		WithSuggestion("use a positive integer constant, or omit the length for a dynamic array").
		Build()
}

// InvalidElementaryType creates an error for an unsupported elementary width
func InvalidElementaryType(name string, pos Position) AnalysisError {
	builder := NewAnalysisError(ErrorInvalidElementaryType, fmt.Sprintf("unsupported elementary type '%s'", name), pos).
		WithLength(len(name))

	switch {
	case strings.HasPrefix(name, "uint") || strings.HasPrefix(name, "int"):
		builder = builder.WithNote("integer widths run from 8 to 256 in steps of 8")
	case strings.HasPrefix(name, "bytes"):
		builder = builder.WithNote("fixed byte widths run from bytes1 to bytes32")
	}

	return builder.Build()
}

// TypeExprSyntax creates an error for a type expression that does not parse
func TypeExprSyntax(message string, pos Position) AnalysisError {
	return NewAnalysisError(ErrorTypeExprSyntax, message, pos).
		WithHelp("type expressions look like 'uint256', 'bytes32[4]', 'Lib.Entry[]' or 'function(uint256) returns (bool)'").
		Build()
}

// UnknownBuiltin creates an error for an unknown builtin variable or function
func UnknownBuiltin(name string, pos Position, similarNames []string) AnalysisError {
	builder := NewAnalysisError(ErrorUnknownBuiltin, fmt.Sprintf("unknown builtin '%s'", name), pos).
		WithLength(len(name))

	if len(similarNames) > 0 {
		builder = builder.WithSuggestion(didYouMean(similarNames))
	}

	return builder.Build()
}

// UnknownAttachmentTarget creates an error for a using-for directive whose
// library or function name resolves to nothing
func UnknownAttachmentTarget(name string, pos Position, similarNames []string) AnalysisError {
	builder := NewAnalysisError(ErrorUnknownAttachmentTarget,
		fmt.Sprintf("'%s' does not resolve to a library or free function", name), pos).
		WithLength(len(name))

	if len(similarNames) > 0 {
		builder = builder.WithSuggestion(didYouMean(similarNames))
	}

	return builder.WithNote("using-for directives attach libraries or free functions to a receiver type").Build()
}

// UnknownAttachmentType creates an error for a using-for receiver type that
// resolves to nothing
func UnknownAttachmentType(typeName string, pos Position) AnalysisError {
	return NewAnalysisError(ErrorUnknownAttachmentType,
		fmt.Sprintf("receiver type '%s' does not resolve to a known type", typeName), pos).
		WithLength(len(typeName)).
		WithSuggestion("use '*' to attach the target to every type").
		Build()
}

// InvalidAttachmentTarget creates an error for a using-for target of the wrong kind
func InvalidAttachmentTarget(name, kind string, pos Position) AnalysisError {
	return NewAnalysisError(ErrorInvalidAttachmentTarget,
		fmt.Sprintf("'%s' is a %s, not a library or free function", name, kind), pos).
		WithLength(len(name)).
		WithNote("only libraries and free functions can be attached with using-for").
		Build()
}

// ShadowedAttachment creates a warning for a directive that re-binds a
// receiver type already bound by a base contract
func ShadowedAttachment(typeName, base string, pos Position) AnalysisError {
	return NewAnalysisWarning(WarningShadowedAttachment,
		fmt.Sprintf("directive for '%s' shadows an attachment inherited from '%s'", typeName, base), pos).
		WithNote("the derived contract's targets take precedence; inherited targets stay reachable after them").
		Build()
}

// InvalidConfig creates an error for a configuration value that cannot be applied
func InvalidConfig(message string) AnalysisError {
	return NewAnalysisError(ErrorInvalidConfig, message, Position{}).Build()
}

// Helper functions

func didYouMean(names []string) string {
	if len(names) == 1 {
		return fmt.Sprintf("did you mean '%s'?", names[0])
	}
	return fmt.Sprintf("did you mean one of: '%s'?", strings.Join(names, "', '"))
}

// FindSimilarNames returns the candidates within a small edit distance of
// the target, for "did you mean" suggestions.
func FindSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
