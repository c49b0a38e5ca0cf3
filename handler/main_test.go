// handler/main_test.go
package handler

import (
	"movie-api/logger"
	"os"
	"testing"
)

// TestMain sets up logging for the handler package.
func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}
