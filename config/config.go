// Package config 提供模型配置文件的加载（支持 YAML/JSON）。
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/sarkit/sar"
)

// File 是配置文件的顶层结构。
//
// YAML 示例：
//
//	model:
//	  metric: jaccard
//	  time_decay: true
//	  half_life_days: 30
//	  normalize: true
//	  strict_unknowns: false
type File struct {
	Model sar.Config `yaml:"model" json:"model"`
}

// LoadFromYAML 从 YAML 文件加载模型配置并校验。
func LoadFromYAML(path string) (sar.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sar.Config{}, fmt.Errorf("read file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return sar.Config{}, fmt.Errorf("parse yaml: %w", err)
	}

	return normalize(f.Model)
}

// LoadFromJSON 从 JSON 文件加载模型配置并校验。
func LoadFromJSON(path string) (sar.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sar.Config{}, fmt.Errorf("read file: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return sar.Config{}, fmt.Errorf("parse json: %w", err)
	}

	return normalize(f.Model)
}

// normalize 补默认值后做一次完整校验，配置错误在加载时即暴露。
func normalize(cfg sar.Config) (sar.Config, error) {
	if cfg.Metric == "" {
		cfg.Metric = sar.MetricCosine
	}
	if err := cfg.Validate(); err != nil {
		return sar.Config{}, err
	}
	return cfg, nil
}
