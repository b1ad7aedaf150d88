// Package commands defines the blogapi CLI.
//
// Commands
//
//   - serve  Run the HTTP API server
//   - seed   Load fixture data into the store
//
// Configuration comes from the environment (PORT, MONGO_URI, MONGO_DATABASE,
// BCRYPT_COST) with flag overrides. The --mem flag swaps the mongo store for
// the in-memory one, which is handy for local runs without a deployment.
package commands
