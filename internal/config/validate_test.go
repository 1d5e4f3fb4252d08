package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testCueSchema = `
name: string & !=""
map_center: {
	lat: number & >=-90 & <=90
	lng: number & >=-180 & <=180
}
resources: [...{
	code:  string & !=""
	name:  string & !=""
	unit:  string & !=""
	total: int & >0
}]
`

func writeConfigPair(t *testing.T, yaml string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "exercise.yaml")
	cuePath := filepath.Join(dir, "exercise.cue")
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(cuePath, []byte(testCueSchema), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	return cfgPath, cuePath
}

func TestValidateWithCue_Valid(t *testing.T) {
	cfgPath, cuePath := writeConfigPair(t, `
name: cue-test
map_center:
  lat: 48.835
  lng: 12.964
resources:
  - code: sandbags
    name: Sandbags
    unit: pieces
    total: 50000
`)
	if err := ValidateWithCue(cfgPath, cuePath); err != nil {
		t.Fatalf("ValidateWithCue: %v", err)
	}
	if _, err := Load(cfgPath, cuePath); err != nil {
		t.Fatalf("Load with schema: %v", err)
	}
}

func TestValidateWithCue_RejectsBadConfig(t *testing.T) {
	cfgPath, cuePath := writeConfigPair(t, `
name: cue-test
map_center:
  lat: 200
  lng: 12.964
resources:
  - code: sandbags
    name: Sandbags
    unit: pieces
    total: 50000
`)
	if err := ValidateWithCue(cfgPath, cuePath); err == nil {
		t.Fatal("expected out-of-range latitude to fail validation")
	}
}

func TestValidateWithCue_UnparseableYAML(t *testing.T) {
	cfgPath, cuePath := writeConfigPair(t, "name: [unclosed\n")
	if err := ValidateWithCue(cfgPath, cuePath); err == nil {
		t.Fatal("expected parse error for malformed YAML")
	}
}
