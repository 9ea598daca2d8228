package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"viewsim/internal/simulation"
)

type stagesFile struct {
	Stages map[string]struct {
		ViewsMin int `yaml:"views_min"`
		ViewsMax int `yaml:"views_max"`
	} `yaml:"stages"`
}

// LoadStages reads the stage target table YAML, keyed by stage id "1".."13".
func LoadStages(path string) (map[int]simulation.StageTarget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading stage table: %v", simulation.ErrConfig, err)
	}
	var file stagesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parsing stage table %s: %v", simulation.ErrConfig, path, err)
	}
	if len(file.Stages) == 0 {
		return nil, fmt.Errorf("%w: stage table %s defines no stages", simulation.ErrConfig, path)
	}

	stages := make(map[int]simulation.StageTarget, len(file.Stages))
	for key, entry := range file.Stages {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: stage key %q is not an integer", simulation.ErrConfig, key)
		}
		stages[id] = simulation.StageTarget{ViewsMin: entry.ViewsMin, ViewsMax: entry.ViewsMax}
	}
	return stages, nil
}
