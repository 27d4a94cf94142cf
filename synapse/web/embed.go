// Package web holds the browser half of the intention bar.
package web

import "embed"

//go:embed synapse.js demo.html
var Assets embed.FS
