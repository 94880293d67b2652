package main

import (
	"fmt"

	"github.com/philipparndt/goobj/pkg/asset"
	"github.com/philipparndt/goobj/pkg/obj"
)

// loadAsset reads the OBJ file and its materials from args and converts
// them with the configured target size.
func loadAsset(args []string) (*asset.Asset, error) {
	bundle, err := loadBundle(args)
	if err != nil {
		return nil, err
	}

	a, err := asset.Process(bundle, cfg.TargetSize)
	if err != nil {
		return nil, err
	}
	logger.Debug("converted", "transform", a.Transform.String(), "buffers", a.Buffers.String())
	return a, nil
}

// loadGeometry reads and parses only the OBJ file. Analysis does not need
// materials, so a missing or incomplete MTL library is not an error here.
func loadGeometry(args []string) (asset.Bundle, *obj.Geometry, error) {
	bundle, err := loadBundle(args)
	if err != nil {
		return asset.Bundle{}, nil, err
	}
	g, err := asset.ParseGeometry(bundle)
	if err != nil {
		return asset.Bundle{}, nil, err
	}
	return bundle, g, nil
}

func loadBundle(args []string) (asset.Bundle, error) {
	bundle, err := asset.LoadFiles(logger, args...)
	if err != nil {
		return asset.Bundle{}, err
	}
	logger.Debug("loaded files", "files", bundle.Names())
	return bundle, nil
}

func checkCount(count int) error {
	if count < 0 {
		return fmt.Errorf("count must not be negative, got %d", count)
	}
	return nil
}
