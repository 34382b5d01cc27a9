package discovery

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// Directives are the binding-relevant declarations found in a view's markup:
//
//	<viewdata model="example.com/app/views.HomeModel" />
//	<use master="Site" />
//	<use namespace="example.com/app/helpers" />
type Directives struct {
	// Model is the view-model type name from <viewdata model="...">.
	Model string
	// Master is the master name from <use master="...">. HasMaster tells an
	// empty master ("no master") apart from an absent one ("default").
	Master    string
	HasMaster bool
	// Namespaces lists every <use namespace="..."> in document order.
	Namespaces []string
}

// ParseDirectives tokenizes markup and extracts its directives. The last
// model and master declarations win.
func ParseDirectives(r io.Reader) (Directives, error) {
	var d Directives
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return Directives{}, fmt.Errorf("failed to tokenize markup: %w", err)
			}
			return d, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if !hasAttr {
				continue
			}
			switch string(name) {
			case "viewdata":
				for _, a := range attributes(z) {
					if a.Key == "model" {
						d.Model = a.Val
					}
				}
			case "use":
				for _, a := range attributes(z) {
					switch a.Key {
					case "master":
						d.Master, d.HasMaster = a.Val, true
					case "namespace":
						if a.Val != "" {
							d.Namespaces = append(d.Namespaces, a.Val)
						}
					}
				}
			}
		}
	}
}

func attributes(z *html.Tokenizer) []html.Attribute {
	var attrs []html.Attribute
	for {
		key, val, more := z.TagAttr()
		attrs = append(attrs, html.Attribute{Key: string(key), Val: string(val)})
		if !more {
			return attrs
		}
	}
}
