package diagram

import "fmt"

// Stage names a validation checkpoint.
type Stage string

// Validation checkpoints.
const (
	StageDefinition Stage = "definition"
	StageLayout     Stage = "layout"
	StageRender     Stage = "render"
)

// WarningCode classifies a non-fatal finding.
type WarningCode string

// Definition warnings.
const (
	WarnSelfLoop      WarningCode = "self_loop"
	WarnEmptyLabel    WarningCode = "empty_label"
	WarnUnknownPreset WarningCode = "unknown_preset"
	WarnUnknownStyle  WarningCode = "unknown_style"
	WarnInvalidColor  WarningCode = "invalid_color"
	WarnUnknownGroup  WarningCode = "unknown_group"
)

// Layout warnings.
const (
	WarnTextOverflow        WarningCode = "text_overflow"
	WarnFontBelowFloor      WarningCode = "font_below_floor"
	WarnShapeOverlap        WarningCode = "shape_overlap"
	WarnOutOfBounds         WarningCode = "out_of_bounds"
	WarnDegenerateConnector WarningCode = "degenerate_connector"
	WarnConnectorDrift      WarningCode = "connector_drift"
)

// Render warnings.
const (
	WarnPaintOrder WarningCode = "paint_order"
)

// Warning is a non-fatal finding. Subject names the offending shape key,
// connection key or primitive id.
type Warning struct {
	Stage   Stage       `json:"stage"`
	Code    WarningCode `json:"code"`
	Subject string      `json:"subject"`
	Message string      `json:"message"`
}

// String returns "stage/code subject: message".
func (w Warning) String() string {
	return fmt.Sprintf("%s/%s %s: %s", w.Stage, w.Code, w.Subject, w.Message)
}

// Has reports whether ws contains a warning with the given code and subject.
// An empty subject matches any.
func Has(ws []Warning, code WarningCode, subject string) bool {
	for _, w := range ws {
		if w.Code == code && (subject == "" || w.Subject == subject) {
			return true
		}
	}
	return false
}

func definitionWarning(code WarningCode, subject, msg string) Warning {
	return Warning{Stage: StageDefinition, Code: code, Subject: subject, Message: msg}
}
