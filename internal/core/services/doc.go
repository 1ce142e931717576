// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services reach the network, the identity provider and the renderer only
// through driven ports.
package services
