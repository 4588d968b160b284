// Package utils provides common utility functions for the circuit-manager application.
// It includes helper functions for type conversion of loosely typed carrier
// payloads and other shared logic that doesn't fit into domain-specific packages.
package utils
