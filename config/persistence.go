package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ghodss/yaml"

	"github.com/safing/portrng/log"
)

var (
	configFilePath     string
	configFilePathLock sync.Mutex
)

// SetConfigFile sets the file the user config is loaded from and saved to. Files ending with .yaml or .yml are handled as yaml, everything else as json.
func SetConfigFile(path string) {
	configFilePathLock.Lock()
	defer configFilePathLock.Unlock()

	configFilePath = path
}

func getConfigFile() string {
	configFilePathLock.Lock()
	defer configFilePathLock.Unlock()

	return configFilePath
}

func isYAMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func loadConfig() error {
	// check if persistence is configured
	path := getConfigFile()
	if path == "" {
		return nil
	}

	// read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// convert yaml to json
	if isYAMLFile(path) {
		data, err = yaml.YAMLToJSON(data)
		if err != nil {
			return fmt.Errorf("failed to parse yaml config %s: %w", path, err)
		}
	}

	// convert to map
	newValues, err := JSONToMap(data)
	if err != nil {
		return err
	}

	// apply
	return setConfig(newValues)
}

func saveConfig() error {
	// check if persistence is configured
	path := getConfigFile()
	if path == "" {
		return nil
	}

	// extract values
	activeValues := make(map[string]interface{})
	optionsLock.RLock()
	for key, option := range options {
		option.Lock()
		if option.activeValue != nil {
			activeValues[key] = option.activeValue.getData(option)
		}
		option.Unlock()
	}
	optionsLock.RUnlock()

	// convert to JSON
	data, err := MapToJSON(activeValues)
	if err != nil {
		log.Errorf("config: failed to save config: %s", err)
		return err
	}

	// convert to yaml
	if isYAMLFile(path) {
		data, err = yaml.JSONToYAML(data)
		if err != nil {
			log.Errorf("config: failed to save config: %s", err)
			return err
		}
	}

	// write file
	return os.WriteFile(path, data, 0o0600)
}

// JSONToMap parses and flattens a hierarchical json object.
func JSONToMap(jsonData []byte) (map[string]interface{}, error) {
	loaded := make(map[string]interface{})
	err := json.Unmarshal(jsonData, &loaded)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJSON, err)
	}

	return Flatten(loaded), nil
}

// Flatten returns a flattened copy of the given hierarchical map.
func Flatten(config map[string]interface{}) (flattenedConfig map[string]interface{}) {
	flattenedConfig = make(map[string]interface{})
	flattenMap(flattenedConfig, config, "")
	return flattenedConfig
}

func flattenMap(rootMap, subMap map[string]interface{}, subKey string) {
	for key, entry := range subMap {

		// get next level key
		subbedKey := key
		if subKey != "" {
			subbedKey = fmt.Sprintf("%s/%s", subKey, key)
		}

		// check for next subMap
		nextSub, ok := entry.(map[string]interface{})
		if ok {
			flattenMap(rootMap, nextSub, subbedKey)
		} else {
			rootMap[subbedKey] = entry
		}
	}
}

// MapToJSON expands a flattened map and returns it as json.
func MapToJSON(config map[string]interface{}) ([]byte, error) {
	return json.MarshalIndent(Expand(config), "", "  ")
}

// Expand returns a hierarchical copy of the given flattened map.
func Expand(flattenedConfig map[string]interface{}) (config map[string]interface{}) {
	config = make(map[string]interface{})
	for key, entry := range flattenedConfig {
		PutValueIntoHierarchicalConfig(config, key, entry)
	}
	return config
}

// PutValueIntoHierarchicalConfig injects a configuration entry into an hierarchical config map. Conflicting entries will be replaced.
func PutValueIntoHierarchicalConfig(config map[string]interface{}, key string, value interface{}) {
	parts := strings.Split(key, "/")

	// create/check maps for all parts except the last one
	subMap := config
	for i, part := range parts {
		if i == len(parts)-1 {
			// do not process the last part,
			// which is not a map, but the value key itself
			break
		}

		var nextSubMap map[string]interface{}
		// get value
		value, ok := subMap[part]
		if !ok {
			// create new map and assign it
			nextSubMap = make(map[string]interface{})
			subMap[part] = nextSubMap
		} else {
			nextSubMap, ok = value.(map[string]interface{})
			if !ok {
				// create new map and assign it
				nextSubMap = make(map[string]interface{})
				subMap[part] = nextSubMap
			}
		}

		// assign for next parts loop
		subMap = nextSubMap
	}

	// assign value to last submap
	subMap[parts[len(parts)-1]] = value
}
