// Package chlog prepends Markdown changelog sections built from merge
// request history.
//
// Related packages: config, changelog, runner, model, vcs, vcs/gitcli,
// vcs/gogit
package chlog

import "github.com/jeffrom/chlog/config"

// Config holds the configuration for a chlog run. It is mostly populated
// from command-line flags and chlog.yaml.
//
// See "go doc github.com/jeffrom/chlog/config Config" for more information.
type Config = config.Config
