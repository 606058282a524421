package blob

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
)

// Ensure FileProvider implements the interface.
var _ driven.BlobProvider = (*FileProvider)(nil)

// FileProvider loads form data from a local file or standard input.
// The file may be raw JSON or a saved viewform page.
type FileProvider struct {
	stdin io.Reader
}

// NewFileProvider creates a file provider reading "-" from stdin.
func NewFileProvider(stdin io.Reader) *FileProvider {
	if stdin == nil {
		stdin = os.Stdin
	}
	return &FileProvider{stdin: stdin}
}

// Load reads and decodes ref.
func (p *FileProvider) Load(_ context.Context, ref string) (domain.Node, error) {
	var (
		content []byte
		err     error
	)
	if ref == domain.StdinRef {
		content, err = io.ReadAll(p.stdin)
	} else {
		content, err = os.ReadFile(ref)
	}
	if err != nil {
		return domain.Null(), fmt.Errorf("%w: reading %s: %v", domain.ErrMissingInput, ref, err)
	}
	return DecodeDocument(content)
}
