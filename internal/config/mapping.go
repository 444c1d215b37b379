package config

import (
	"fmt"
	"os"

	"github.com/okian/clipmark/internal/domain/model"
	"gopkg.in/yaml.v3"
)

// LoadMapping reads a role-to-column profile such as:
//
//	code: Action
//	mins: Minute
//	colormark: Colour
//
// Roles left out keep their header defaults.
func LoadMapping(path string) (model.RoleMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	return ParseMapping(data)
}

// ParseMapping decodes a YAML role profile.
func ParseMapping(data []byte) (model.RoleMap, error) {
	raw := map[string]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: mapping: %w", ErrInvalidConfig, err)
	}
	roles := make(model.RoleMap, len(raw))
	for name, col := range raw {
		role, err := model.ParseRole(name)
		if err != nil {
			return nil, fmt.Errorf("%w: mapping: %w", ErrInvalidConfig, err)
		}
		roles[role] = col
	}
	return roles, nil
}
