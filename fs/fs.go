// Package appfs embeds the files shipped inside the binaries.
package appfs

import "embed"

//go:embed migrations templates/email/*
var FS embed.FS
