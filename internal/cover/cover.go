// Package cover supplies cover images for programs that were scraped
// without one.
package cover

import "fmt"

// Generator produces a cover image for a program and returns its public URL.
// Called once per program lacking an image; opaque beyond that contract.
type Generator interface {
	Generate(titleNative, slug string) (string, error)
}

// StaticGenerator points programs at pre-rendered covers under the public
// static root, one per slug.
type StaticGenerator struct {
	rootURL string
}

func NewStatic(rootURL string) *StaticGenerator {
	return &StaticGenerator{rootURL: rootURL}
}

func (g *StaticGenerator) Generate(titleNative, slug string) (string, error) {
	return fmt.Sprintf("%s/static/covers/%s.png", g.rootURL, slug), nil
}
