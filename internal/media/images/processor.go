package images

import (
	"fmt"
	"log/slog"
)

// Processor saves provider-generated images and computes their BlurHash.
type Processor struct {
	storage *Storage
	logger  *slog.Logger
}

// NewProcessor creates a Processor backed by the given storage.
func NewProcessor(storage *Storage, logger *slog.Logger) *Processor {
	return &Processor{
		storage: storage,
		logger:  logger,
	}
}

// Process stores image data for a store and returns its BlurHash.
// A BlurHash failure is logged but does not fail the save; the image is
// still usable without a placeholder.
func (p *Processor) Process(storeID string, data []byte) (string, error) {
	if err := p.storage.Save(storeID, data); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	hash, err := ComputeBlurHash(data)
	if err != nil {
		p.logger.Warn("blurhash computation failed",
			"store_id", storeID,
			"error", err,
		)
		return "", nil
	}

	p.logger.Debug("saved store image",
		"store_id", storeID,
		"size", len(data),
		"blurhash", hash,
	)
	return hash, nil
}

// Remove deletes a store's image.
func (p *Processor) Remove(storeID string) error {
	return p.storage.Delete(storeID)
}
