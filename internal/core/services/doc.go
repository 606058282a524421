// Package services implements the driving ports: extraction, history,
// response plans, submission and settings.
//
// The structure locator and question classifier are pure functions of
// the decoded blob; they hold no shared state and may run concurrently
// on independent inputs.
package services
