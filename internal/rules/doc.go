// Package rules fans per-location style policy out into concrete style-checker
// invocations. It is the only place where source locations are treated
// differently from one another; everything else handles them uniformly.
package rules
