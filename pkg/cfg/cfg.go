package cfg

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/koding/multiconfig"
	"github.com/toolkits/pkg/file"
)

func fileLoader(fpath string) multiconfig.Loader {
	switch {
	case strings.HasSuffix(fpath, ".toml"):
		return &multiconfig.TOMLLoader{Path: fpath}
	case strings.HasSuffix(fpath, ".json"):
		return &multiconfig.JSONLoader{Path: fpath}
	case strings.HasSuffix(fpath, ".yaml"), strings.HasSuffix(fpath, ".yml"):
		return &multiconfig.YAMLLoader{Path: fpath}
	}
	return nil
}

// LoadConfigs merges every toml/json/yaml file under configDir into
// configPtr, in lexical file order.
func LoadConfigs(configDir string, configPtr interface{}) error {
	loaders := []multiconfig.Loader{
		&multiconfig.TagLoader{},
	}

	files, err := file.FilesUnder(configDir)
	if err != nil {
		return fmt.Errorf("failed to list files under: %s : %v", configDir, err)
	}
	sort.Strings(files)

	for _, fpath := range files {
		if l := fileLoader(path.Join(configDir, fpath)); l != nil {
			loaders = append(loaders, l)
		}
	}

	m := multiconfig.DefaultLoader{
		Loader:    multiconfig.MultiLoader(loaders...),
		Validator: multiconfig.MultiValidator(&multiconfig.RequiredValidator{}),
	}

	return m.Load(configPtr)
}

func LoadConfig(configFile string, configPtr interface{}) error {
	loader := fileLoader(configFile)
	if loader == nil {
		return fmt.Errorf("unsupported config file format: %s", configFile)
	}

	m := multiconfig.DefaultLoader{
		Loader:    multiconfig.MultiLoader(loader),
		Validator: multiconfig.MultiValidator(&multiconfig.RequiredValidator{}),
	}

	return m.Load(configPtr)
}
