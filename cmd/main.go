// Package main is the entry point for the badge-service application.
//
// @title           Badge Service API
// @version         1.0.0
// @description     Serves SVG badges showing the current version of vcpkg ports.
//
//	Badges are rendered from the port manifest and cached for a short time.
//
// @contact.name   API Support
// @contact.url    https://github.com/guttosm/badge-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @tag.name        Badges
// @tag.description Package version badges
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
