// Threadmap CI/CD
//
// Package main provides reproducible builds and tests locally and in GitHub actions.
// It is the main harness for handling nearly all dev operations.
package main

import (
	"context"

	"dagger/threadmap/internal/dagger"
)

// Threadmap is the main module for the Threadmap CI/CD pipeline
type Threadmap struct {
	// Project source directory
	//
	// +private
	Source *dagger.Directory
}

// New creates a new Threadmap CI/CD module instance
func New(
	// Project source directory.
	//
	// +defaultPath="/"
	// +ignore=[".git", ".direnv", ".devenv", "build", "tmp"]
	source *dagger.Directory,
) *Threadmap {
	return &Threadmap{
		Source: source,
	}
}

// goContainer returns an alpine-based Go container with the Go caches
// mounted and the project source at /src.
//
// It is the shared foundation for tests, builds, and linting.
func (t *Threadmap) goContainer() *dagger.Container {
	return dag.Container().
		From("golang:1.25-alpine").
		WithEnvVariable("CGO_ENABLED", "0").
		WithEnvVariable("PATH", "/go/bin:$PATH", dagger.ContainerWithEnvVariableOpts{Expand: true}).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithWorkdir("/src").
		WithDirectory("/src", t.Source)
}

// Test runs the threadmap unit tests via "go test"
func (t *Threadmap) Test(ctx context.Context) (string, error) {
	return t.goContainer().
		WithExec([]string{"go", "test", "-v", "./..."}).
		Stdout(ctx)
}
