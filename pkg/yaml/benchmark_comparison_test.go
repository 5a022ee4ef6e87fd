package yaml

import (
	"testing"

	yamlv3 "gopkg.in/yaml.v3"
)

// Comparison benchmarks against gopkg.in/yaml.v3 (industry standard).
// yaml.v3 is a test-only dependency, not part of this module's public stack.

var testData = `name: BenchmarkTest
version: "1.0.0"
enabled: true
count: 42`

type ComparisonConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Enabled bool   `yaml:"enabled"`
	Count   int    `yaml:"count"`
}

// ============================================================================
// confyaml (this package)
// ============================================================================

func BenchmarkConfyaml_Unmarshal(b *testing.B) {
	data := []byte(testData)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var cfg ComparisonConfig
		if err := Unmarshal(data, &cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkConfyaml_Validate(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Validate(testData); err != nil {
			b.Fatal(err)
		}
	}
}

// ============================================================================
// gopkg.in/yaml.v3 (industry standard for comparison)
// ============================================================================

func BenchmarkStdYAML_Unmarshal(b *testing.B) {
	data := []byte(testData)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var cfg ComparisonConfig
		if err := yamlv3.Unmarshal(data, &cfg); err != nil {
			b.Fatal(err)
		}
	}
}
