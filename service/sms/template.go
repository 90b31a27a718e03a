package smssvc

import "strings"

// RenderTemplate substitutes every {name} occurrence with the recipient's
// name.
func RenderTemplate(template, name string) string {
	return strings.ReplaceAll(template, "{name}", name)
}
