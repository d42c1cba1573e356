package render

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

var requiredElements = []string{"html", "head", "body"}

// VerifyDocument checks that doc tokenizes cleanly and explicitly opens the html, head and
// body elements. html.Parse would synthesize missing elements, so the raw token stream is used.
func VerifyDocument(doc string) error {
	seen := make(map[string]bool, len(requiredElements))
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				return errors.WrapError(err, errors.CategoryRender, "rendered page is not valid HTML").Build()
			}
			break
		}
		if tt == html.StartTagToken {
			name, _ := z.TagName()
			seen[string(name)] = true
		}
	}
	for _, el := range requiredElements {
		if !seen[el] {
			return errors.RenderError("rendered page is missing <" + el + "> element").
				WithContext("element", el).
				Build()
		}
	}
	return nil
}
