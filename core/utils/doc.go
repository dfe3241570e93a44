// Package utils provides small helpers shared across packages, mainly
// conversion of loosely typed values coming from databases and callers.
package utils
