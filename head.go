package podabio

import (
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/phil426/podabio-sub000/internal/themecss"
)

// The inline block sits after the preconnect hints and before every
// external stylesheet link, so those links can still override it.
var headTemplate = template.Must(template.New("head").Parse(
	`{{if .FontsURL}}<link rel="preconnect" href="https://fonts.googleapis.com">
<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
{{end}}<style>
{{.CSS}}</style>
{{if .FontsURL}}<link rel="stylesheet" href="{{.FontsURL}}">
{{end}}`))

type headData struct {
	FontsURL string
	CSS      template.CSS
}

// HeadFragment renders the <head> snippet for res: font preconnect hints,
// the inline <style> block and the fonts stylesheet link, in that order.
// The CSS is verified once more before it is marked trusted.
func HeadFragment(res *Result) (template.HTML, error) {
	if res == nil {
		return "", errors.New("head fragment: nil result")
	}
	if _, err := themecss.VerifyStylesheet(res.CSS); err != nil {
		return "", fmt.Errorf("head fragment: %w", err)
	}

	var b strings.Builder
	err := headTemplate.Execute(&b, headData{
		FontsURL: res.FontsURL,
		CSS:      template.CSS(res.CSS),
	})
	if err != nil {
		return "", fmt.Errorf("head fragment: %w", err)
	}
	return template.HTML(b.String()), nil
}
