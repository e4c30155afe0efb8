package manifest

import (
	"fmt"

	"github.com/fulmenhq/manifestneat/pkg/safeio"
)

// SetIntegrationType inserts the classification and restores canonical key order.
func (d *Document) SetIntegrationType(integrationType string) error {
	return d.Set("integration_type", integrationType)
}

// WriteFile serializes doc and replaces the file at path atomically. On any
// failure the original file is left untouched.
func WriteFile(path string, doc *Document) error {
	data, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := safeio.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
