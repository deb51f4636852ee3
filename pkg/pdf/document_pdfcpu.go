package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// pdfcpuInfo is what pdfcpu contributes on top of the glyph backends
type pdfcpuInfo struct {
	metadata Metadata
	rulings  [][]LineObject // per page, top-left origin
}

// readPDFCPU parses the file with pdfcpu and collects the information
// dictionary and the stroked segments of every page
func readPDFCPU(filepath string) (info *pdfcpuInfo, err error) {
	defer recoverBackend("pdfcpu", &err)

	ctx, err := api.ReadContextFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	// validation fills in the information dictionary fields
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	info = &pdfcpuInfo{
		metadata: Metadata{
			Title:    ctx.Title,
			Author:   ctx.Author,
			Subject:  ctx.Subject,
			Creator:  ctx.Creator,
			Producer: ctx.Producer,
		},
		rulings: make([][]LineObject, ctx.PageCount),
	}

	for i := 1; i <= ctx.PageCount; i++ {
		pageDict, _, attrs, err := ctx.PageDict(i, false)
		if err != nil {
			return nil, fmt.Errorf("failed to get page dict %d: %w", i, err)
		}

		top := defaultPageHeight
		if attrs != nil && attrs.MediaBox != nil {
			top = attrs.MediaBox.UR.Y
		}

		content, err := pageContent(ctx, pageDict)
		if err != nil {
			return nil, fmt.Errorf("failed to extract content of page %d: %w", i, err)
		}

		info.rulings[i-1] = newRulingScanner(top).Scan(content)
	}

	return info, nil
}

// pageContent decodes and concatenates the content streams of a page
func pageContent(ctx *model.Context, pageDict types.Dict) ([]byte, error) {
	contents := pageDict["Contents"]
	if contents == nil {
		return nil, nil
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
		streamDict, _, err := ctx.DereferenceStreamDict(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to dereference stream: %w", err)
		}
		if streamDict == nil {
			continue
		}
		if err := streamDict.Decode(); err != nil {
			return nil, fmt.Errorf("failed to decode stream: %w", err)
		}
		combined = append(combined, streamDict.Content...)
		combined = append(combined, '\n')
	}

	return combined, nil
}
