package relevance

import (
	"strings"

	"github.com/secmon-lab/riskmatch/pkg/domain/model"
)

// BuildSearchableText lowercases and joins the risk's title, description,
// causes and consequences with single spaces. Empty parts are skipped.
func BuildSearchableText(risk *model.Risk) string {
	if risk == nil {
		return ""
	}

	parts := make([]string, 0, 2+len(risk.Causes)+len(risk.Consequences))
	parts = appendNonEmpty(parts, risk.Title, risk.Description)
	parts = appendNonEmpty(parts, risk.Causes...)
	parts = appendNonEmpty(parts, risk.Consequences...)

	return strings.ToLower(strings.Join(parts, " "))
}

func appendNonEmpty(dst []string, values ...string) []string {
	for _, v := range values {
		if v != "" {
			dst = append(dst, v)
		}
	}
	return dst
}
