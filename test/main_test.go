package test

import (
	"os"
	"testing"

	"citywalk/internal/config"
)

// TestMain loads the shipped presets for all integration tests
func TestMain(m *testing.M) {
	_ = config.MustLoadPresets("../assets/presets.yaml")
	os.Exit(m.Run())
}
