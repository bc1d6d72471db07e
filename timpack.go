/*
Package timpack packs texture and palette images into Sony PlayStation TIM
files and reads them back.
*/
package timpack

import "log"

// Packer loads source images, builds TIM files from them and optionally
// records where they are placed in VRAM.
type Packer struct {
	registry *Registry
	logger   *log.Logger
}

// New returns a Packer. registry may be nil.
func New(registry *Registry, logger *log.Logger) *Packer {
	return &Packer{
		registry: registry,
		logger:   logger,
	}
}
