// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services receive every collaborator and setting through their
// constructors and never read the process environment.
package services
