// Package schema has the metric schemas, render models and shared constants for rvss.
package schema
