package errors

// Error codes for the solir analyzer.
// These codes are used in diagnostics and documentation to provide
// consistent error identification across the toolchain.
//
// Error code ranges:
// E0001-E0099: Type system errors
// E0100-E0199: Type expression parse errors
// E0200-E0299: Builtin resolution errors
// E0300-E0399: Using-for resolution errors
// E0400-E0499: Configuration errors
// E0500-E0799: Reserved for future use
// E0800-E0899: Warning codes

const (
	// E0001: Name does not resolve to a contract, struct, enum or alias
	ErrorUnknownTypeName = "E0001"

	// E0002: Array length is not a positive integer constant
	ErrorInvalidArrayLength = "E0002"

	// E0003: Elementary type name with an unsupported width (uint7, bytes33, ...)
	ErrorInvalidElementaryType = "E0003"

	// E0100: Type expression does not match the grammar
	ErrorTypeExprSyntax = "E0100"

	// E0200: Unknown builtin variable or function name
	ErrorUnknownBuiltin = "E0200"

	// E0300: Using-for target name resolves to nothing
	ErrorUnknownAttachmentTarget = "E0300"

	// E0301: Using-for receiver type resolves to nothing
	ErrorUnknownAttachmentType = "E0301"

	// E0302: Using-for target is neither a library nor a free function
	ErrorInvalidAttachmentTarget = "E0302"

	// E0400: Configuration file cannot be applied (bad solc version, ...)
	ErrorInvalidConfig = "E0400"

	// Warning codes

	// W0001: A directive re-binds a receiver type already bound by a base contract
	WarningShadowedAttachment = "W0001"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUnknownTypeName:
		return "Type name is used but not declared in the compilation unit"
	case ErrorInvalidArrayLength:
		return "Fixed array length must be a positive integer constant"
	case ErrorInvalidElementaryType:
		return "Elementary type has an unsupported width"
	case ErrorTypeExprSyntax:
		return "Type expression is not well formed"
	case ErrorUnknownBuiltin:
		return "Builtin variable or function does not exist"
	case ErrorUnknownAttachmentTarget:
		return "Using-for directive names a library or function that does not exist"
	case ErrorUnknownAttachmentType:
		return "Using-for directive names a receiver type that does not exist"
	case ErrorInvalidAttachmentTarget:
		return "Using-for target must be a library or a free function"
	case ErrorInvalidConfig:
		return "Configuration value cannot be applied"
	case WarningShadowedAttachment:
		return "Directive shadows an attachment inherited from a base contract"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the code represents a warning rather than an error
func IsWarning(code string) bool {
	return code >= "E0800" && code < "E0900" || code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "Type System"
	case code >= "E0100" && code < "E0200":
		return "Type Expression"
	case code >= "E0200" && code < "E0300":
		return "Builtins"
	case code >= "E0300" && code < "E0400":
		return "Using For"
	case code >= "E0400" && code < "E0500":
		return "Configuration"
	case code >= "E0800" && code < "E0900":
		return "Warning"
	case code[0] == 'W':
		return "Warning"
	default:
		return "Unknown"
	}
}
