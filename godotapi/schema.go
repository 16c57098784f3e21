// Package godotapi loads the Godot editor's extension API dump and exposes
// the class inheritance graph the generator works from.
//
// The dump (extension_api.json) is produced by running the editor binary
// with --headless --dump-extension-api. Only the header and the class list
// are decoded; the rest of the dump (methods, signals, constants) is not
// needed for node classification.
package godotapi

import (
	"encoding/json"
	"os"

	"github.com/godot-bevy/typegen/errors"
)

// Class is a single entry in the extension API class list.
type Class struct {
	Name     string `json:"name"`
	Inherits string `json:"inherits,omitempty"`
}

// Header carries the engine version the dump was produced by.
type Header struct {
	VersionMajor    int    `json:"version_major"`
	VersionMinor    int    `json:"version_minor"`
	VersionPatch    int    `json:"version_patch"`
	VersionStatus   string `json:"version_status"`
	VersionFullName string `json:"version_full_name"`
}

// API is a decoded extension API dump, reduced to the fields the generator
// needs.
type API struct {
	Header  Header  `json:"header"`
	Classes []Class `json:"classes"`
}

// Load reads and decodes an extension API dump from disk.
func Load(path string) (*API, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrSchemaMissing, "%s", path)
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	api, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return api, nil
}

// Parse decodes a dump held in memory. A dump with no classes, or with a
// class entry missing its name, is rejected: silently skipping entries
// would desynchronize the generated artifacts from the engine.
func Parse(data []byte) (*API, error) {
	var api API
	if err := json.Unmarshal(data, &api); err != nil {
		return nil, errors.Wrap(errors.ErrSchemaMalformed, err.Error())
	}

	if len(api.Classes) == 0 {
		return nil, errors.Wrap(errors.ErrSchemaMalformed, "dump contains no classes")
	}
	for i, c := range api.Classes {
		if c.Name == "" {
			return nil, errors.Wrapf(errors.ErrSchemaMalformed, "class entry %d has no name", i)
		}
	}

	return &api, nil
}
