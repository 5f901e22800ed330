package core

import (
	"path/filepath"

	"github.com/inovacc/miniature/internal/encoding"
	"github.com/inovacc/miniature/internal/model"
)

// ReadMetadata loads and validates {packageDir}/{metaFile}.
func ReadMetadata(packageDir, metaFile string) (*model.PackageMetadata, error) {
	if metaFile == "" {
		metaFile = DefaultMetaFile
	}

	path := filepath.Join(packageDir, metaFile)

	meta, err := encoding.LoadJSON[model.PackageMetadata](path)
	if err != nil {
		return nil, &ConfigMissingError{Kind: "metadata", Path: path, Err: err}
	}

	if meta == nil {
		return nil, &ConfigMissingError{Kind: "metadata", Path: path}
	}

	meta.ApplyDefaults()

	if err := meta.Validate(metaFile); err != nil {
		return nil, err
	}

	return meta, nil
}

// LoadManifest reads a batch manifest and applies entry defaults.
func LoadManifest(path string) (*model.Manifest, error) {
	manifest, err := encoding.LoadJSON[model.Manifest](path)
	if err != nil {
		return nil, &ConfigMissingError{Kind: "manifest", Path: path, Err: err}
	}

	if manifest == nil {
		return nil, &ConfigMissingError{Kind: "manifest", Path: path}
	}

	if manifest.Packages == nil {
		return nil, &ConfigMissingError{Kind: "manifest", Path: path, Err: errNoPackages}
	}

	manifest.ApplyDefaults()

	return manifest, nil
}
