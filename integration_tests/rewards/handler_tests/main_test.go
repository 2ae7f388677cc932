package rewardshandlerintegrationtests

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	if err := os.Setenv("APP_ENV", "test"); err != nil {
		panic("Failed to set APP_ENV: " + err.Error())
	}

	exitCode := m.Run()

	if testEnv != nil {
		testEnv.Cleanup()
	}
	os.Exit(exitCode)
}
