// internal/browser/locator.go
package browser

import "fmt"

// Kind is the closed enumeration of locator strategies. Keeping it a typed
// enum (instead of string dispatch) makes an unrecognized kind impossible to
// construct outside this package.
type Kind int

const (
	KindID Kind = iota
	KindName
	KindXPath
	KindTag
	KindClass
	KindCSS
	KindLinkText
)

var kindNames = map[Kind]string{
	KindID:       "id",
	KindName:     "name",
	KindXPath:    "xpath",
	KindTag:      "tag",
	KindClass:    "class",
	KindCSS:      "css",
	KindLinkText: "link-text",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a locator-kind name to its Kind. Unknown names fail fast
// with an error rather than falling through to a silent sentinel.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown locator kind %q", s)
}

// Locator is an immutable (kind, expression) pair identifying zero-or-one
// DOM node on the live page.
type Locator struct {
	Kind Kind
	Expr string
}

func (l Locator) String() string {
	return l.Kind.String() + "=" + l.Expr
}

// Convenience constructors for the kinds the workflow actually uses.

func ByID(expr string) Locator    { return Locator{Kind: KindID, Expr: expr} }
func ByName(expr string) Locator  { return Locator{Kind: KindName, Expr: expr} }
func ByXPath(expr string) Locator { return Locator{Kind: KindXPath, Expr: expr} }
func ByCSS(expr string) Locator   { return Locator{Kind: KindCSS, Expr: expr} }
