// Package app contains the core application logic. It defines the main
// App struct, its configuration, and the primary execution lifecycle
// (building the 63-task structure grid or evaluating collected MD
// results), decoupled from any specific entrypoint like a CLI.
package app
