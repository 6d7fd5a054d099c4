package convert

import (
	"context"
)

// Converter turns a downloaded performance file into notation XML.
type Converter interface {
	Convert(ctx context.Context, inputPath, outputPath string) error
}
