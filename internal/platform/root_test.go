package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindConfig(t *testing.T) {
	// Create a temp directory structure
	// /tmp/
	//   project/ (.ddc.yaml)
	//     data/
	//       nested/
	//   empty/

	baseDir := t.TempDir()
	projectDir := filepath.Join(baseDir, "project")
	dataDir := filepath.Join(projectDir, "data")
	nestedDir := filepath.Join(dataDir, "nested")
	emptyDir := filepath.Join(baseDir, "empty")

	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(emptyDir, 0755); err != nil {
		t.Fatal(err)
	}

	configPath := filepath.Join(projectDir, ".ddc.yaml")
	if err := os.WriteFile(configPath, []byte("title: Project\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// A directory named like a config file is not a config file.
	if err := os.Mkdir(filepath.Join(dataDir, "ddc.yaml"), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		startPath string
		want      string
		wantErr   bool
	}{
		{
			name:      "Start at Project",
			startPath: projectDir,
			want:      configPath,
		},
		{
			name:      "Start in Data",
			startPath: dataDir,
			want:      configPath,
		},
		{
			name:      "Start Nested Deeply",
			startPath: nestedDir,
			want:      configPath,
		},
		{
			name:      "No Config Found",
			startPath: emptyDir,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindConfig(tt.startPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("FindConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if got != "" && filepath.Clean(got) != filepath.Clean(tt.want) {
				t.Errorf("FindConfig() = %v, want %v", got, tt.want)
			}
		})
	}
}
