// cmd/main.go
package main

import (
	"movie-api/app"
)

// @title           Studio Ghibli Movie API
// @version         1.0
// @description     A catalog of movies and registered users with their favorite movies.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
