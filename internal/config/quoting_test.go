package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
)

func TestEnvFile_QuotedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "CRICSHEET_URL='https://mirror.example/t20s.zip?team=\"all\"'\n" +
		"DATA_PATH=\"/srv/cricket data\"\n" +
		"WICKET_POLICY=draw # bowler-friendly\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	env, err := godotenv.Read(path)
	if err != nil {
		t.Fatalf("Error reading env: %v", err)
	}

	expected := map[string]string{
		"CRICSHEET_URL": `https://mirror.example/t20s.zip?team="all"`,
		"DATA_PATH":     "/srv/cricket data",
		"WICKET_POLICY": "draw",
	}
	for key, want := range expected {
		if got := env[key]; got != want {
			t.Errorf("%s: expected %q, got %q", key, want, got)
		}
	}
}
