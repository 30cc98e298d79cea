package configs

import (
	"fmt"
	"os"

	"exhome-listing-service/internal/core/domain"

	"gopkg.in/yaml.v3"
)

type rangeFile struct {
	Min  *int64 `yaml:"min"`
	Max  *int64 `yaml:"max"`
	Step *int64 `yaml:"step"`
}

type profileFile struct {
	Type            string     `yaml:"type"`
	Alias           string     `yaml:"alias"`
	RoutePath       string     `yaml:"route_path"`
	PropertyGroupID *int       `yaml:"property_group_id"`
	Price           *rangeFile `yaml:"price"`
	Area            *rangeFile `yaml:"area"`
}

type profilesFile struct {
	Profiles []profileFile `yaml:"profiles"`
}

// LoadProfiles возвращает профили по умолчанию, переопределенные YAML-файлом.
// Пустой path - только значения по умолчанию.
//
// Пример файла:
//
//	profiles:
//	  - type: CAN_CHO_THUE
//	    price: {max: 200000000}
func LoadProfiles(path string) ([]domain.ListingProfile, error) {
	profiles := domain.DefaultProfiles()
	if path == "" {
		return profiles, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}
	return mergeProfiles(profiles, data)
}

func mergeProfiles(profiles []domain.ListingProfile, data []byte) ([]domain.ListingProfile, error) {
	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse profiles file: %w", err)
	}

	for _, override := range file.Profiles {
		idx := -1
		for i, p := range profiles {
			if string(p.Type) == override.Type {
				idx = i
				break
			}
		}
		if idx < 0 {
			if override.Type == "" || override.RoutePath == "" {
				return nil, fmt.Errorf("profiles file: new profile needs type and route_path")
			}
			profiles = append(profiles, domain.ListingProfile{Type: domain.ListingType(override.Type)})
			idx = len(profiles) - 1
		}

		p := &profiles[idx]
		if override.Alias != "" {
			p.Alias = override.Alias
		}
		if override.RoutePath != "" {
			p.RoutePath = domain.NormalizeRoutePath(override.RoutePath)
		}
		if override.PropertyGroupID != nil {
			p.PropertyGroupID = *override.PropertyGroupID
		}
		applyRange(&p.Price, override.Price)
		applyRange(&p.Area, override.Area)

		if p.Price.Max <= p.Price.Min || p.Area.Max <= p.Area.Min {
			return nil, fmt.Errorf("profiles file: profile %s has an empty range", p.Type)
		}
	}

	return profiles, nil
}

func applyRange(dst *domain.RangeConfig, src *rangeFile) {
	if src == nil {
		return
	}
	if src.Min != nil {
		dst.Min = *src.Min
	}
	if src.Max != nil {
		dst.Max = *src.Max
	}
	if src.Step != nil {
		dst.Step = *src.Step
	}
}
