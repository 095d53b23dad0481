// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Every service takes the viewer's session explicitly where identity
// matters; there is no ambient signed-in state.
package services
