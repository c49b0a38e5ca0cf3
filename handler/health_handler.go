package handler

import (
	"movie-api/common"
	"net/http"
	"path/filepath"
)

const welcomeMessage = "Welcome to My Studio Ghibli Movie API!"

// HealthCheck godoc
// @Summary      Show the status of server
// @Description  get the status of server
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	common.WriteJSON(w, http.StatusOK, map[string]string{"status": "API is healthy and running"})
}

// Welcome godoc
// @Summary      Welcome message
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string
// @Router       / [get]
func Welcome(w http.ResponseWriter, r *http.Request) {
	common.WriteText(w, http.StatusOK, welcomeMessage)
}

// Documentation serves documentation.html from the static directory.
func Documentation(staticDir string) http.HandlerFunc {
	page := filepath.Join(staticDir, "documentation.html")
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, page)
	}
}
