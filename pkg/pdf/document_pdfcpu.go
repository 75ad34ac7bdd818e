package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// OpenWithPDFCPU parses PDF bytes using pdfcpu, the last-resort backend.
// pdfcpu is the strictest structural parser of the three but recovers
// cross-reference damage the others reject. Text comes from a lightweight
// content stream scan, so coordinates are approximate.
func OpenWithPDFCPU(data []byte) (doc Document, err error) {
	defer recoverAs(&err)

	ctx, err := api.ReadContext(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	pages := make([]Page, ctx.PageCount)
	for i := 1; i <= ctx.PageCount; i++ {
		pages[i-1] = newPDFCPUPage(ctx, i)
	}

	return &document{pages: pages}, nil
}

// newPDFCPUPage extracts one page, degrading to a partial page on failure
func newPDFCPUPage(ctx *model.Context, pageNumber int) (result Page) {
	p := newPage(pageNumber)
	result = p

	// named result keeps the partial page when extraction panics
	defer func() { recover() }()

	pageDict, _, attrs, err := ctx.PageDict(pageNumber, false)
	if err != nil || pageDict == nil {
		return p
	}

	if attrs != nil && attrs.MediaBox != nil {
		p.width = attrs.MediaBox.Width()
		p.height = attrs.MediaBox.Height()
	}

	content := pageContent(ctx, pageDict)
	if len(content) == 0 {
		return p
	}

	scanContent(content, pageFonts(ctx, pageDict, attrs), p)
	return p
}

// pageContent collects and decodes the page's content streams. Contents may
// be a single stream reference or an array of them.
func pageContent(ctx *model.Context, pageDict types.Dict) []byte {
	contents := pageDict["Contents"]
	if contents == nil {
		return nil
	}

	var refs []types.IndirectRef
	switch v := contents.(type) {
	case types.IndirectRef:
		refs = append(refs, v)
	case *types.IndirectRef:
		refs = append(refs, *v)
	case types.Array:
		for _, item := range v {
			switch ref := item.(type) {
			case types.IndirectRef:
				refs = append(refs, ref)
			case *types.IndirectRef:
				refs = append(refs, *ref)
			}
		}
	}

	var combined []byte
	for _, ref := range refs {
		sd, _, err := ctx.DereferenceStreamDict(ref)
		if err != nil || sd == nil {
			continue
		}
		if len(sd.Content) == 0 {
			if err := sd.Decode(); err != nil {
				continue
			}
		}
		combined = append(combined, sd.Content...)
		combined = append(combined, '\n')
	}
	return combined
}

// pageFonts maps font resource names (the /F1 in a Tf operator) to their
// BaseFont names and ToUnicode CMaps. Resources may live on the page dict or
// be inherited.
func pageFonts(ctx *model.Context, pageDict types.Dict, attrs *model.InheritedPageAttrs) map[string]*pageFont {
	fonts := map[string]*pageFont{}

	resources, err := ctx.DereferenceDict(pageDict["Resources"])
	if err != nil || resources == nil {
		if attrs == nil || attrs.Resources == nil {
			return fonts
		}
		resources = attrs.Resources
	}

	fontDicts, err := ctx.DereferenceDict(resources["Font"])
	if err != nil || fontDicts == nil {
		return fonts
	}

	for name, obj := range fontDicts {
		fd, err := ctx.DereferenceDict(obj)
		if err != nil || fd == nil {
			continue
		}
		f := &pageFont{}
		if base, ok := fd["BaseFont"].(types.Name); ok {
			f.baseFont = string(base)
		}
		f.toUnicode = fontToUnicode(ctx, fd["ToUnicode"])
		fonts[name] = f
	}
	return fonts
}

// fontToUnicode resolves and parses a font's ToUnicode stream, if any
func fontToUnicode(ctx *model.Context, obj types.Object) *toUnicodeCMap {
	var ref types.IndirectRef
	switch v := obj.(type) {
	case types.IndirectRef:
		ref = v
	case *types.IndirectRef:
		ref = *v
	default:
		return nil
	}

	sd, _, err := ctx.DereferenceStreamDict(ref)
	if err != nil || sd == nil {
		return nil
	}
	if len(sd.Content) == 0 {
		if err := sd.Decode(); err != nil {
			return nil
		}
	}
	return parseToUnicodeCMap(sd.Content)
}
