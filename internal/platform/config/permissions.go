package config

import (
	"fmt"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
	"github.com/spf13/viper"
)

// LoadPermissionMatrix returns the built-in matrix, or the one described by the YAML file at path.
//
// File layout:
//
//	permissions:
//	  owner: [shortlist, schedule_interview, ...]
//	  viewer: []
//
// Roles missing from the file get no actions. Unknown role or action names fail the load.
func LoadPermissionMatrix(path string) (*domain.PermissionMatrix, error) {
	if path == "" {
		return domain.DefaultPermissionMatrix(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read permissions file %s: %w", path, err)
	}
	if !v.IsSet("permissions") {
		return nil, fmt.Errorf("permissions file %s has no permissions section", path)
	}

	grants := v.GetStringMapStringSlice("permissions")
	matrix, err := domain.NewPermissionMatrix(grants)
	if err != nil {
		return nil, fmt.Errorf("invalid permissions file %s: %w", path, err)
	}
	return matrix, nil
}
