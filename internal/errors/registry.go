package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// Registered codes.
const (
	CodeSourceUnreachable = "E101"
	CodeSourceStatus      = "E102"
	CodeMalformedPayload  = "E110"
	CodeRenderFailed      = "E130"
	CodeUnrenderableItem  = "E131"
	CodeDocumentFailed    = "E132"
	CodeConfigParse       = "E120"
	CodeConfigFile        = "E121"
	CodeInvalidPort       = "E122"
	CodeInvalidEndpoint   = "E123"
	CodeInvalidOption     = "E124"
	CodeCommandFailed     = "E140"
)

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Fetch Errors (E100-E109)
	// ============================================

	CodeSourceUnreachable: {
		Category:   CategoryFetch,
		Message:    "Remote data source unreachable",
		Suggestion: "Check source.endpoint and that the data source is running",
	},
	CodeSourceStatus: {
		Category:   CategoryFetch,
		Message:    "Remote data source returned a non-2xx status",
		Suggestion: "Check the data source logs; the response body was not read",
	},

	// ============================================
	// Payload Errors (E110-E119)
	// ============================================

	CodeMalformedPayload: {
		Category:   CategoryPayload,
		Message:    "Malformed goods payload",
		Suggestion: `The data source must answer {"data":{"list":[...]}}`,
	},

	// ============================================
	// Configuration Errors (E120-E129)
	// ============================================

	CodeConfigParse: {
		Category:   CategoryConfig,
		Message:    "Failed to parse configuration",
		Suggestion: "Check that the config file is valid JSON or YAML",
	},
	CodeConfigFile: {
		Category:   CategoryConfig,
		Message:    "Configuration file not readable",
		Suggestion: "Check the --config path",
	},
	CodeInvalidPort: {
		Category:   CategoryConfig,
		Message:    "Invalid port",
		Suggestion: "Use a port between 0 and 65535",
	},
	CodeInvalidEndpoint: {
		Category:   CategoryConfig,
		Message:    "Invalid data source endpoint",
		Suggestion: "Use an absolute http:// or https:// URL",
	},
	CodeInvalidOption: {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},

	// ============================================
	// Render Errors (E130-E139)
	// ============================================

	CodeRenderFailed: {
		Category: CategoryRender,
		Message:  "Render failed",
	},
	CodeUnrenderableItem: {
		Category:   CategoryRender,
		Message:    "Goods item cannot be rendered",
		Suggestion: "List items must be strings, numbers, booleans, null or arrays of those",
	},
	CodeDocumentFailed: {
		Category: CategoryRender,
		Message:  "Page document could not be written",
	},

	// ============================================
	// CLI Errors (E140-E149)
	// ============================================

	CodeCommandFailed: {
		Category: CategoryCLI,
		Message:  "Command failed",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
