// internal/service/template_service.go
package service

import (
    "regexp"
    "strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)

// RenderTemplate replaces every {{KEY}} token whose key matches a field
// name case-insensitively. Tokens with no matching field, or whose value
// is empty, are left verbatim so missing data stays visible instead of
// silently blanking part of the message.
func RenderTemplate(template string, fields map[string]string) string {
    if len(fields) == 0 || !strings.Contains(template, "{{") {
        return template
    }

    lookup := make(map[string]string, len(fields))
    for k, v := range fields {
        lookup[strings.ToLower(k)] = v
    }

    return placeholderPattern.ReplaceAllStringFunc(template, func(token string) string {
        key := strings.ToLower(strings.TrimSpace(token[2 : len(token)-2]))
        if v, ok := lookup[key]; ok && v != "" {
            return v
        }
        return token
    })
}
